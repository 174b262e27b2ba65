package hostel_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(
	provideHostelRepo, provideSubscriptionRepo, provideAnalyticsRepo,
	provideHostelService, provideSubscriptionService, provideAnalyticsService,
	provideSeedService,
)

func provideHostelRepo(db *gorm.DB) repositories.HostelRepository {
	return repositories.NewHostelRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideAnalyticsRepo(db *gorm.DB) repositories.AnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideHostelService(
	txManager infra.TxManager,
	hostelRepo repositories.HostelRepository,
	subRepo repositories.SubscriptionRepository,
	cfg *config.Config,
	log logger.Interface,
) services.HostelServiceInterface {
	return services.NewHostelService(txManager, hostelRepo, subRepo, cfg, log)
}

func provideSubscriptionService(
	txManager infra.TxManager,
	subRepo repositories.SubscriptionRepository,
	hostelRepo repositories.HostelRepository,
	cfg *config.Config,
	clock utils.Clock,
	log logger.Interface,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(txManager, subRepo, hostelRepo, cfg, clock, log)
}

func provideAnalyticsService(
	txManager infra.TxManager,
	analyticsRepo repositories.AnalyticsRepository,
	historyRepo repositories.PlacementHistoryRepository,
	hostelRepo repositories.HostelRepository,
	reveals mem.TTLStore,
	cfg *config.Config,
	clock utils.Clock,
	log logger.Interface,
) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(txManager, analyticsRepo, historyRepo, hostelRepo, reveals, cfg, clock, log)
}

func provideSeedService(
	planRepo repositories.IPlacementPlanRepository,
	accounts services.AccountServiceInterface,
	hostels services.HostelServiceInterface,
	cfg *config.Config,
	log logger.Interface,
) *services.SeedService {
	return services.NewSeedService(planRepo, accounts, hostels, cfg, log)
}

package placement_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(
	providePlanRepo, provideRequestRepo, provideHistoryRepo,
	providePlanService, providePlacementService,
)

func providePlanRepo(db *gorm.DB) repositories.IPlacementPlanRepository {
	return repositories.NewPlacementPlanRepository(db)
}

func provideRequestRepo(db *gorm.DB) repositories.PlacementRequestRepository {
	return repositories.NewPlacementRequestRepository(db)
}

func provideHistoryRepo(db *gorm.DB) repositories.PlacementHistoryRepository {
	return repositories.NewPlacementHistoryRepository(db)
}

func providePlanService(
	planRepo repositories.IPlacementPlanRepository,
	txManager infra.TxManager,
	cfg *config.Config,
	log logger.Interface,
) services.PlacementPlanServiceInterface {
	return services.NewPlacementPlanService(planRepo, txManager, cfg, log)
}

func providePlacementService(
	txManager infra.TxManager,
	requestRepo repositories.PlacementRequestRepository,
	planRepo repositories.IPlacementPlanRepository,
	hostelRepo repositories.HostelRepository,
	historyRepo repositories.PlacementHistoryRepository,
	notifier services.NotificationServiceInterface,
	clock utils.Clock,
	log logger.Interface,
) services.PlacementServiceInterface {
	return services.NewPlacementService(txManager, requestRepo, planRepo, hostelRepo, historyRepo, notifier, clock, log)
}

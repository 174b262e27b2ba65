package dashboard

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository, clock utils.Clock) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, clock)
}

package controllers_fx

import (
	"go.uber.org/fx"

	"hostelhub/internal/api/controllers"
	"hostelhub/internal/config"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPlacementController),
	fx.Provide(controllers.NewAdminPlacementController),
	fx.Provide(controllers.NewHostelController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(provideDashboardController))

func provideDashboardController(dashboardService services.DashboardService, cfg *config.Config, clock utils.Clock) *controllers.DashboardController {
	return controllers.NewDashboardController(dashboardService, cfg.Placement.Currency, clock)
}

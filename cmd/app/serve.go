package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"hostelhub/cmd/fx/controllers_fx"
	"hostelhub/cmd/fx/dashboard"
	"hostelhub/cmd/fx/scheduler_fx"
	"hostelhub/internal/api"
	"hostelhub/internal/api/controllers"
	"hostelhub/internal/config"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/middleware"
	"hostelhub/pkg/utils"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP API. The in-process expiry sweeper runs when placement.sweep_interval is positive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}

			gin.SetMode(cfg.Server.Mode)

			app := fx.New(
				domainModules(cfg),
				dashboard.Module,
				controllers_fx.Module,
				scheduler_fx.Module,
				fx.Provide(provideAuthorizer, ProvideRouter),
				fx.Invoke(StartServer),
			)
			app.Run()
			return app.Err()
		},
	}
}

func provideAuthorizer(log logger.Interface) (*middleware.Authorizer, error) {
	return middleware.NewAuthorizer(log)
}

func ProvideRouter(
	cfg *config.Config,
	jwt *utils.JWTManager,
	authorizer *middleware.Authorizer,
	log logger.Interface,
	accountController *controllers.AccountController,
	placementController *controllers.PlacementController,
	adminPlacementController *controllers.AdminPlacementController,
	hostelController *controllers.HostelController,
	subscriptionController *controllers.SubscriptionController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
) *gin.Engine {
	return api.NewRouter(api.RouterDeps{
		Controllers: api.Controllers{
			Account:        accountController,
			Placement:      placementController,
			AdminPlacement: adminPlacementController,
			Hostel:         hostelController,
			Subscription:   subscriptionController,
			Notification:   notificationController,
			Dashboard:      dashboardController,
		},
		JWT:            jwt,
		Authorizer:     authorizer,
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log logger.Interface) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting HTTP server", "addr", srv.Addr, "mode", cfg.Server.Mode)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("HTTP server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

package core_fx

import (
	"go.uber.org/fx"

	"hostelhub/internal/config"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

// Module supplies the process-wide collaborators. *config.Config is expected to be supplied with fx.Supply.
var Module = fx.Provide(provideLogger, provideClock, provideJWTManager)

func provideLogger() logger.Interface {
	return logger.NewLogger()
}

func provideClock() utils.Clock {
	return utils.NewSystemClock()
}

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
}

package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/pkg/logger"
)

var Module = fx.Provide(
	provideDB, provideTxManager)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log logger.Interface) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideTxManager(db *gorm.DB) infra.TxManager {
	return infra.NewTxManager(db)
}

package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, log logger.Interface) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, log)
}

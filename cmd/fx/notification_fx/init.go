package notification_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(
	provideNotificationRepo, provideNotificationService,
)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepositoryInterface {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(notificationRepo repositories.NotificationRepositoryInterface, clock utils.Clock) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo, clock)
}

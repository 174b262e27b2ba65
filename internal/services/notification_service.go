package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/utils"
)

type NotificationServiceInterface interface {
	// Notify writes an in-app notification. Inside a transaction context it joins that transaction.
	Notify(ctx context.Context, recipientID uuid.UUID, kind db_models.NotificationKind, title, message string, payload map[string]interface{}) error
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, pageSize int) (response_models.NotificationList, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	clock            utils.Clock
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface, clock utils.Clock) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo, clock: clock}
}

func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, kind db_models.NotificationKind, title, message string, payload map[string]interface{}) error {
	n := &db_models.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Message:     message,
	}

	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		n.Payload = datatypes.JSON(raw)
	}

	if err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		return utils.DBError("create notification", err)
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, pageSize int) (response_models.NotificationList, error) {
	items, err := s.notificationRepo.ListNotifications(ctx, recipientID, unreadOnly, page, pageSize)
	if err != nil {
		return response_models.NotificationList{}, utils.DBError("list notifications", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return response_models.NotificationList{}, utils.DBError("count unread notifications", err)
	}

	if items == nil {
		items = []db_models.Notification{}
	}
	return response_models.NotificationList{Unread: unread, Items: items}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.MarkRead(ctx, notificationID, recipientID, s.clock.Now())
	if err != nil {
		return utils.DBError("mark notification read", err)
	}
	if n == 0 {
		return utils.NotFound("notification", notificationID)
	}
	return nil
}

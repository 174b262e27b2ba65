package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
)

type NotificationRepositoryInterface interface {
	CreateNotification(ctx context.Context, n *db_models.Notification) error
	ListNotifications(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, pageSize int) ([]db_models.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (int64, error)
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *db_models.Notification) error {
	return infra.GetTx(ctx, r.db).Create(n).Error
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, pageSize int) ([]db_models.Notification, error) {
	var notifications []db_models.Notification
	q := infra.GetTx(ctx, r.db).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	err := q.
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&db_models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&n).Error
	return n, err
}

// MarkRead only touches notifications owned by recipientID. An already read row keeps its read_at.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (int64, error) {
	res := infra.GetTx(ctx, r.db).
		Model(&db_models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", at))
	return res.RowsAffected, res.Error
}

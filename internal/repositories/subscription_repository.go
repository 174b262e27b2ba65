package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *db_models.Subscription) error
	Save(ctx context.Context, sub *db_models.Subscription) error
	FindByHostel(ctx context.Context, hostelID uuid.UUID) (*db_models.Subscription, error)
	FindByHostelForUpdate(ctx context.Context, hostelID uuid.UUID) (*db_models.Subscription, error)
	// ExpireStale flips active rows whose end date is before today to expired.
	ExpireStale(ctx context.Context, today time.Time) (int64, error)
	CountByStatus(ctx context.Context, status db_models.SubscriptionStatus) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return infra.GetTx(ctx, r.db).Create(sub).Error
}

func (r *subscriptionRepository) Save(ctx context.Context, sub *db_models.Subscription) error {
	return infra.GetTx(ctx, r.db).Save(sub).Error
}

func (r *subscriptionRepository) FindByHostel(ctx context.Context, hostelID uuid.UUID) (*db_models.Subscription, error) {
	return r.find(infra.GetTx(ctx, r.db), hostelID)
}

func (r *subscriptionRepository) FindByHostelForUpdate(ctx context.Context, hostelID uuid.UUID) (*db_models.Subscription, error) {
	return r.find(infra.GetTx(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), hostelID)
}

func (r *subscriptionRepository) find(q *gorm.DB, hostelID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := q.First(&sub, "hostel_id = ?", hostelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExpireStale(ctx context.Context, today time.Time) (int64, error) {
	res := infra.GetTx(ctx, r.db).
		Model(&db_models.Subscription{}).
		Where("status = ? AND end_date < ?", db_models.SubStatusActive, today).
		Update("status", db_models.SubStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepository) CountByStatus(ctx context.Context, status db_models.SubscriptionStatus) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&db_models.Subscription{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

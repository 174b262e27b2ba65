package repositories

import (
	"context"

	"gorm.io/gorm"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
)

type AnalyticsRepository interface {
	CreateView(ctx context.Context, v *db_models.HostelView) error
	CreateReveal(ctx context.Context, r *db_models.ContactReveal) error
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CreateView(ctx context.Context, v *db_models.HostelView) error {
	return infra.GetTx(ctx, r.db).Create(v).Error
}

func (r *analyticsRepository) CreateReveal(ctx context.Context, c *db_models.ContactReveal) error {
	return infra.GetTx(ctx, r.db).Create(c).Error
}

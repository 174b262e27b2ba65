package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
)

type PlacementHistoryRepository interface {
	Create(ctx context.Context, h *db_models.PlacementHistory) error
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]db_models.PlacementHistory, error)
	FindByRequest(ctx context.Context, requestID uuid.UUID) (*db_models.PlacementHistory, error)
	// IncrementViews bumps the view counter of every history row whose window contains at.
	IncrementViews(ctx context.Context, hostelID uuid.UUID, at time.Time) (int64, error)
	IncrementContactReveals(ctx context.Context, hostelID uuid.UUID, at time.Time) (int64, error)
}

type placementHistoryRepository struct {
	db *gorm.DB
}

func NewPlacementHistoryRepository(db *gorm.DB) PlacementHistoryRepository {
	return &placementHistoryRepository{db: db}
}

func (r *placementHistoryRepository) Create(ctx context.Context, h *db_models.PlacementHistory) error {
	return infra.GetTx(ctx, r.db).Create(h).Error
}

func (r *placementHistoryRepository) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]db_models.PlacementHistory, error) {
	var rows []db_models.PlacementHistory
	err := infra.GetTx(ctx, r.db).
		Where("hostel_id = ?", hostelID).
		Order("start_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *placementHistoryRepository) FindByRequest(ctx context.Context, requestID uuid.UUID) (*db_models.PlacementHistory, error) {
	var rows []db_models.PlacementHistory
	err := infra.GetTx(ctx, r.db).
		Where("request_id = ?", requestID).
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (r *placementHistoryRepository) IncrementViews(ctx context.Context, hostelID uuid.UUID, at time.Time) (int64, error) {
	return r.increment(ctx, hostelID, at, "views_during_period")
}

func (r *placementHistoryRepository) IncrementContactReveals(ctx context.Context, hostelID uuid.UUID, at time.Time) (int64, error) {
	return r.increment(ctx, hostelID, at, "contacts_revealed_during_period")
}

func (r *placementHistoryRepository) increment(ctx context.Context, hostelID uuid.UUID, at time.Time, column string) (int64, error) {
	res := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementHistory{}).
		Where("hostel_id = ? AND start_at <= ? AND end_at >= ?", hostelID, at, at).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	return res.RowsAffected, res.Error
}

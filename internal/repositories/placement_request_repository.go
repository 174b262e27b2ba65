package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/pkg/utils"
)

// ReviewUpdate carries the columns written by a pending -> approved/rejected transition.
type ReviewUpdate struct {
	Status          db_models.PlacementStatus
	ReviewedAt      time.Time
	ReviewedBy      uuid.UUID
	AdminNotes      string
	FeaturedStartAt *time.Time
	FeaturedEndAt   *time.Time
}

type PlacementRequestFilter struct {
	OwnerID  *uuid.UUID
	HostelID *uuid.UUID
	Status   *db_models.PlacementStatus
}

type PlacementRequestRepository interface {
	Create(ctx context.Context, req *db_models.PlacementRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.PlacementRequest, error)
	HasPending(ctx context.Context, hostelID uuid.UUID) (bool, error)

	// MarkReviewed applies update only while the row is still pending and reports
	// whether this call won the transition.
	MarkReviewed(ctx context.Context, id uuid.UUID, update ReviewUpdate) (bool, error)

	// ListExpiredIDs returns approved requests whose window ended strictly before now.
	ListExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// MarkExpired moves one approved request past its window to expired and reports
	// whether this call won the transition.
	MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)

	CountActiveWindows(ctx context.Context, hostelID uuid.UUID, now time.Time) (int64, error)
	// FindActiveForHostel returns the approved request whose window contains now,
	// preferring the one that ends last.
	FindActiveForHostel(ctx context.Context, hostelID uuid.UUID, now time.Time) (*db_models.PlacementRequest, error)

	List(ctx context.Context, filter PlacementRequestFilter, page, pageSize int) ([]db_models.PlacementRequest, int64, error)
}

type placementRequestRepository struct {
	db *gorm.DB
}

func NewPlacementRequestRepository(db *gorm.DB) PlacementRequestRepository {
	return &placementRequestRepository{db: db}
}

func (r *placementRequestRepository) Create(ctx context.Context, req *db_models.PlacementRequest) error {
	err := infra.GetTx(ctx, r.db).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateRequest
	}
	return err
}

func (r *placementRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.PlacementRequest, error) {
	var req db_models.PlacementRequest
	err := infra.GetTx(ctx, r.db).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *placementRequestRepository) HasPending(ctx context.Context, hostelID uuid.UUID) (bool, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementRequest{}).
		Where("hostel_id = ? AND status = ?", hostelID, db_models.PlacementPending).
		Count(&n).Error
	return n > 0, err
}

func (r *placementRequestRepository) MarkReviewed(ctx context.Context, id uuid.UUID, update ReviewUpdate) (bool, error) {
	res := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementRequest{}).
		Where("id = ? AND status = ?", id, db_models.PlacementPending).
		Updates(map[string]interface{}{
			"status":            update.Status,
			"reviewed_at":       update.ReviewedAt,
			"reviewed_by":       update.ReviewedBy,
			"admin_notes":       update.AdminNotes,
			"featured_start_at": update.FeaturedStartAt,
			"featured_end_at":   update.FeaturedEndAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *placementRequestRepository) ListExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementRequest{}).
		Where("status = ? AND featured_end_at < ?", db_models.PlacementApproved, now).
		Order("featured_end_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *placementRequestRepository) MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	res := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementRequest{}).
		Where("id = ? AND status = ? AND featured_end_at < ?", id, db_models.PlacementApproved, now).
		Update("status", db_models.PlacementExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *placementRequestRepository) CountActiveWindows(ctx context.Context, hostelID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&db_models.PlacementRequest{}).
		Where("hostel_id = ? AND status = ?", hostelID, db_models.PlacementApproved).
		Where("featured_start_at <= ? AND featured_end_at >= ?", now, now).
		Count(&n).Error
	return n, err
}

func (r *placementRequestRepository) FindActiveForHostel(ctx context.Context, hostelID uuid.UUID, now time.Time) (*db_models.PlacementRequest, error) {
	var req db_models.PlacementRequest
	err := infra.GetTx(ctx, r.db).
		Where("hostel_id = ? AND status = ?", hostelID, db_models.PlacementApproved).
		Where("featured_start_at <= ? AND featured_end_at >= ?", now, now).
		Order("featured_end_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *placementRequestRepository) List(ctx context.Context, filter PlacementRequestFilter, page, pageSize int) ([]db_models.PlacementRequest, int64, error) {
	var (
		rows  []db_models.PlacementRequest
		total int64
	)

	q := infra.GetTx(ctx, r.db).Model(&db_models.PlacementRequest{})
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.HostelID != nil {
		q = q.Where("hostel_id = ?", *filter.HostelID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("requested_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	return rows, total, err
}

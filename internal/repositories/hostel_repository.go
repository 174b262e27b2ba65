package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
)

type HostelRepository interface {
	Create(ctx context.Context, hostel *db_models.Hostel) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hostel, error)
	// FindByIDForUpdate row-locks the hostel until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Hostel, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Hostel, error)
	// ListFeatured reads the cached flag; it may include hostels whose window ended since the last sweep.
	ListFeatured(ctx context.Context, page, pageSize int) ([]db_models.Hostel, int64, error)
}

type hostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

func (r *hostelRepository) Create(ctx context.Context, hostel *db_models.Hostel) error {
	return infra.GetTx(ctx, r.db).Create(hostel).Error
}

func (r *hostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hostel, error) {
	var hostel db_models.Hostel
	err := infra.GetTx(ctx, r.db).First(&hostel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Hostel, error) {
	var hostel db_models.Hostel
	err := infra.GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&hostel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return infra.GetTx(ctx, r.db).
		Model(&db_models.Hostel{}).
		Where("id = ?", id).
		Update("is_featured", featured).Error
}

func (r *hostelRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return infra.GetTx(ctx, r.db).
		Model(&db_models.Hostel{}).
		Where("id = ?", id).
		Update("is_verified", verified).Error
}

func (r *hostelRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Unscoped().
		Model(&db_models.Hostel{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

func (r *hostelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Hostel, error) {
	var hostels []db_models.Hostel
	err := infra.GetTx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&hostels).Error
	return hostels, err
}

func (r *hostelRepository) ListFeatured(ctx context.Context, page, pageSize int) ([]db_models.Hostel, int64, error) {
	var (
		hostels []db_models.Hostel
		total   int64
	)

	q := infra.GetTx(ctx, r.db).
		Model(&db_models.Hostel{}).
		Where("is_featured = ? AND is_active = ? AND is_verified = ?", true, true, true)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&hostels).Error
	return hostels, total, err
}

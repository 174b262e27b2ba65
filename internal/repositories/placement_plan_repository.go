package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/pkg/utils"
)

type IPlacementPlanRepository interface {
	Create(ctx context.Context, plan *db_models.PlacementPlan) error
	Save(ctx context.Context, plan *db_models.PlacementPlan) error
	SetActive(ctx context.Context, planID uuid.UUID, active bool) error
	Delete(ctx context.Context, planID uuid.UUID) error
	GetPlanInfoById(ctx context.Context, planID uuid.UUID) (*db_models.PlacementPlan, error)
	FindByCode(ctx context.Context, code string) (*db_models.PlacementPlan, error)
	GetAllPlans(ctx context.Context, activeOnly bool) ([]db_models.PlacementPlan, error)
	// IsReferenced reports whether any placement request points at the plan.
	IsReferenced(ctx context.Context, planID uuid.UUID) (bool, error)
}

type PlacementPlanRepository struct {
	db *gorm.DB
}

func NewPlacementPlanRepository(db *gorm.DB) IPlacementPlanRepository {
	return &PlacementPlanRepository{db: db}
}

func (p PlacementPlanRepository) Create(ctx context.Context, plan *db_models.PlacementPlan) error {
	err := infra.GetTx(ctx, p.db).Create(plan).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewValidationError("name", "a plan with this name or code already exists")
	}
	return err
}

func (p PlacementPlanRepository) Save(ctx context.Context, plan *db_models.PlacementPlan) error {
	err := infra.GetTx(ctx, p.db).Save(plan).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewValidationError("name", "a plan with this name or code already exists")
	}
	return err
}

func (p PlacementPlanRepository) SetActive(ctx context.Context, planID uuid.UUID, active bool) error {
	return infra.GetTx(ctx, p.db).
		Model(&db_models.PlacementPlan{}).
		Where("id = ?", planID).
		Update("is_active", active).Error
}

func (p PlacementPlanRepository) Delete(ctx context.Context, planID uuid.UUID) error {
	return infra.GetTx(ctx, p.db).Delete(&db_models.PlacementPlan{}, "id = ?", planID).Error
}

func (p PlacementPlanRepository) GetPlanInfoById(ctx context.Context, planID uuid.UUID) (*db_models.PlacementPlan, error) {

	var plan db_models.PlacementPlan
	err := infra.GetTx(ctx, p.db).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlacementPlanRepository) FindByCode(ctx context.Context, code string) (*db_models.PlacementPlan, error) {
	var plan db_models.PlacementPlan
	err := infra.GetTx(ctx, p.db).First(&plan, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (p PlacementPlanRepository) GetAllPlans(ctx context.Context, activeOnly bool) ([]db_models.PlacementPlan, error) {

	var plans []db_models.PlacementPlan
	q := infra.GetTx(ctx, p.db).Order("duration_days ASC, price_minor ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}

func (p PlacementPlanRepository) IsReferenced(ctx context.Context, planID uuid.UUID) (bool, error) {
	var n int64
	err := infra.GetTx(ctx, p.db).
		Model(&db_models.PlacementRequest{}).
		Where("plan_id = ?", planID).
		Count(&n).Error
	return n > 0, err
}

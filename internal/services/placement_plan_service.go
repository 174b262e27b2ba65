package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type PlacementPlanServiceInterface interface {
	CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (response_models.PlacementPlan, error)
	// UpdatePlan fails with ErrPlanInUse once any request references the plan.
	UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpdatePlanRequest) (response_models.PlacementPlan, error)
	SetPlanActive(ctx context.Context, planID uuid.UUID, active bool) (response_models.PlacementPlan, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
	ListPlans(ctx context.Context, activeOnly bool) ([]response_models.PlacementPlan, error)
	GetPlanInfoById(ctx context.Context, planID uuid.UUID) (response_models.PlacementPlan, error)
}

type PlacementPlanService struct {
	planRepo        repositories.IPlacementPlanRepository
	txManager       infra.TxManager
	defaultCurrency string
	log             logger.Interface
}

func NewPlacementPlanService(
	planRepo repositories.IPlacementPlanRepository,
	txManager infra.TxManager,
	cfg *config.Config,
	log logger.Interface,
) PlacementPlanServiceInterface {
	return &PlacementPlanService{
		planRepo:        planRepo,
		txManager:       txManager,
		defaultCurrency: cfg.Placement.Currency,
		log:             log.Named("placement_plan"),
	}
}

func (p *PlacementPlanService) CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (response_models.PlacementPlan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.PlacementPlan{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return response_models.PlacementPlan{}, utils.NewValidationError("name", "is required")
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = p.defaultCurrency
	}

	plan := &db_models.PlacementPlan{
		Code:         strings.ToLower(strings.TrimSpace(req.Code)),
		Name:         name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		PriceMinor:   req.PriceMinor,
		Currency:     currency,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}

	if err := p.planRepo.Create(ctx, plan); err != nil {
		return response_models.PlacementPlan{}, storageErr("create plan", err)
	}

	p.log.Infow("placement plan created", "plan_id", plan.ID, "code", plan.Code)
	return toPlanResponse(plan), nil
}

func (p *PlacementPlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpdatePlanRequest) (response_models.PlacementPlan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.PlacementPlan{}, err
	}

	var updated *db_models.PlacementPlan
	err := p.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		plan, err := p.loadPlan(ctx, planID)
		if err != nil {
			return err
		}

		if err := p.ensureUnreferenced(ctx, planID); err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return utils.NewValidationError("name", "is required")
			}
			plan.Name = name
		}
		if req.Description != nil {
			plan.Description = req.Description
		}
		if req.DurationDays != nil {
			plan.DurationDays = *req.DurationDays
		}
		if req.PriceMinor != nil {
			plan.PriceMinor = *req.PriceMinor
		}

		if err := p.planRepo.Save(ctx, plan); err != nil {
			return storageErr("save plan", err)
		}
		updated = plan
		return nil
	})
	if err != nil {
		return response_models.PlacementPlan{}, err
	}

	return toPlanResponse(updated), nil
}

func (p *PlacementPlanService) SetPlanActive(ctx context.Context, planID uuid.UUID, active bool) (response_models.PlacementPlan, error) {
	plan, err := p.loadPlan(ctx, planID)
	if err != nil {
		return response_models.PlacementPlan{}, err
	}

	if err := p.planRepo.SetActive(ctx, planID, active); err != nil {
		return response_models.PlacementPlan{}, utils.DBError("set plan active", err)
	}
	plan.IsActive = active

	p.log.Infow("placement plan toggled", "plan_id", planID, "is_active", active)
	return toPlanResponse(plan), nil
}

func (p *PlacementPlanService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	return p.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := p.loadPlan(ctx, planID); err != nil {
			return err
		}
		if err := p.ensureUnreferenced(ctx, planID); err != nil {
			return err
		}
		if err := p.planRepo.Delete(ctx, planID); err != nil {
			return utils.DBError("delete plan", err)
		}
		return nil
	})
}

func (p *PlacementPlanService) ListPlans(ctx context.Context, activeOnly bool) ([]response_models.PlacementPlan, error) {
	plans, err := p.planRepo.GetAllPlans(ctx, activeOnly)
	if err != nil {
		return nil, utils.DBError("list plans", err)
	}

	result := make([]response_models.PlacementPlan, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i]))
	}
	return result, nil
}

func (p *PlacementPlanService) GetPlanInfoById(ctx context.Context, planID uuid.UUID) (response_models.PlacementPlan, error) {
	plan, err := p.loadPlan(ctx, planID)
	if err != nil {
		return response_models.PlacementPlan{}, err
	}
	return toPlanResponse(plan), nil
}

func (p *PlacementPlanService) loadPlan(ctx context.Context, planID uuid.UUID) (*db_models.PlacementPlan, error) {
	plan, err := p.planRepo.GetPlanInfoById(ctx, planID)
	if err != nil {
		return nil, utils.DBError("load plan", err)
	}
	if plan == nil {
		return nil, utils.NotFound("placement plan", planID)
	}
	return plan, nil
}

func (p *PlacementPlanService) ensureUnreferenced(ctx context.Context, planID uuid.UUID) error {
	used, err := p.planRepo.IsReferenced(ctx, planID)
	if err != nil {
		return utils.DBError("check plan references", err)
	}
	if used {
		return utils.ErrPlanInUse
	}
	return nil
}

func toPlanResponse(plan *db_models.PlacementPlan) response_models.PlacementPlan {
	return response_models.PlacementPlan{
		ID:           plan.ID,
		Code:         plan.Code,
		Name:         plan.Name,
		Description:  plan.Description,
		DurationDays: plan.DurationDays,
		PriceMinor:   plan.PriceMinor,
		Currency:     plan.Currency,
		IsActive:     plan.IsActive,
	}
}

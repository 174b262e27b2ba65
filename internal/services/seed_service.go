package services

import (
	"context"

	"hostelhub/internal/config"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

// DefaultPlans is the catalog a fresh install starts with. Prices are in minor units.
var DefaultPlans = []db_models.PlacementPlan{
	{Code: "1-day-boost", Name: "1-Day Boost", DurationDays: 1, PriceMinor: 50000, IsActive: true},
	{Code: "1-week-premium", Name: "1-Week Premium", DurationDays: 7, PriceMinor: 250000, IsActive: true},
	{Code: "1-month-platinum", Name: "1-Month Platinum", DurationDays: 30, PriceMinor: 800000, IsActive: true},
}

type SeedReport struct {
	PlansCreated int
	AdminCreated bool
	DemoCreated  bool
}

type SeedService struct {
	planRepo repositories.IPlacementPlanRepository
	accounts AccountServiceInterface
	hostels  HostelServiceInterface
	cfg      *config.Config
	log      logger.Interface
}

func NewSeedService(
	planRepo repositories.IPlacementPlanRepository,
	accounts AccountServiceInterface,
	hostels HostelServiceInterface,
	cfg *config.Config,
	log logger.Interface,
) *SeedService {
	return &SeedService{
		planRepo: planRepo,
		accounts: accounts,
		hostels:  hostels,
		cfg:      cfg,
		log:      log.Named("seed"),
	}
}

// Run is idempotent: plans are matched by code and accounts by email.
func (s *SeedService) Run(ctx context.Context, withDemo bool) (SeedReport, error) {
	var report SeedReport

	for _, p := range DefaultPlans {
		existing, err := s.planRepo.FindByCode(ctx, p.Code)
		if err != nil {
			return report, utils.DBError("find plan", err)
		}
		if existing != nil {
			continue
		}
		plan := p
		plan.Currency = s.cfg.Placement.Currency
		if err := s.planRepo.Create(ctx, &plan); err != nil {
			return report, storageErr("create plan", err)
		}
		report.PlansCreated++
	}

	if s.cfg.Seed.AdminEmail != "" && s.cfg.Seed.AdminPassword != "" {
		_, created, err := s.accounts.EnsureAccount(ctx, "Administrator", s.cfg.Seed.AdminEmail, s.cfg.Seed.AdminPassword, utils.RoleAdmin)
		if err != nil {
			return report, err
		}
		report.AdminCreated = created
	} else {
		s.log.Warnw("admin credentials not configured; skipping admin account")
	}

	if withDemo {
		ownerID, created, err := s.accounts.EnsureAccount(ctx, "Demo Owner", "owner@hostelhub.local", "owner-demo-123", utils.RoleOwner)
		if err != nil {
			return report, err
		}
		if created {
			_, err := s.hostels.CreateHostel(ctx, ownerID, request_models.CreateHostelRequest{
				Name:         "Demo Boys Hostel",
				City:         "Lahore",
				Address:      "Johar Town",
				ContactPhone: "+923001234567",
			})
			if err != nil {
				return report, err
			}
			report.DemoCreated = true
		}
	}

	s.log.Infow("seed finished",
		"plans_created", report.PlansCreated,
		"admin_created", report.AdminCreated,
		"demo_created", report.DemoCreated,
	)
	return report, nil
}

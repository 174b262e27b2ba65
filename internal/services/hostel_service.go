package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

const maxSlugAttempts = 50

type HostelServiceInterface interface {
	// CreateHostel registers a hostel for ownerID together with its pending subscription.
	CreateHostel(ctx context.Context, ownerID uuid.UUID, req request_models.CreateHostelRequest) (response_models.Hostel, error)
	GetHostel(ctx context.Context, hostelID uuid.UUID) (response_models.Hostel, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]response_models.Hostel, error)
	// ListFeatured serves the public featured list from the cached flag.
	ListFeatured(ctx context.Context, page, pageSize int) (response_models.Page[response_models.Hostel], error)
	SetVerified(ctx context.Context, hostelID uuid.UUID, verified bool) (response_models.Hostel, error)
}

type HostelService struct {
	txManager  infra.TxManager
	hostelRepo repositories.HostelRepository
	subRepo    repositories.SubscriptionRepository
	feeMinor   int64
	currency   string
	log        logger.Interface
}

func NewHostelService(
	txManager infra.TxManager,
	hostelRepo repositories.HostelRepository,
	subRepo repositories.SubscriptionRepository,
	cfg *config.Config,
	log logger.Interface,
) HostelServiceInterface {
	return &HostelService{
		txManager:  txManager,
		hostelRepo: hostelRepo,
		subRepo:    subRepo,
		feeMinor:   cfg.Subscription.MonthlyFeeMinor,
		currency:   cfg.Placement.Currency,
		log:        log.Named("hostel"),
	}
}

func (s *HostelService) CreateHostel(ctx context.Context, ownerID uuid.UUID, req request_models.CreateHostelRequest) (response_models.Hostel, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.Hostel{}, err
	}

	hostel := &db_models.Hostel{
		OwnerID:        ownerID,
		Name:           utils.SanitizeText(req.Name),
		City:           utils.SanitizeText(req.City),
		Address:        utils.SanitizeText(req.Address),
		ContactPhone:   utils.SanitizeText(req.ContactPhone),
		ContactEmail:   req.ContactEmail,
		WhatsappNumber: utils.SanitizeText(req.WhatsappNumber),
		IsActive:       true,
	}
	if hostel.Name == "" {
		return response_models.Hostel{}, utils.NewValidationError("name", "is required")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sl, err := s.uniqueSlug(ctx, hostel.Name, hostel.City)
		if err != nil {
			return err
		}
		hostel.Slug = sl

		if err := s.hostelRepo.Create(ctx, hostel); err != nil {
			return utils.DBError("create hostel", err)
		}
		if err := s.subRepo.Create(ctx, NewPendingSubscription(hostel.ID, s.feeMinor, s.currency)); err != nil {
			return utils.DBError("create subscription", err)
		}
		return nil
	})
	if err != nil {
		return response_models.Hostel{}, err
	}

	s.log.Infow("hostel created", "hostel_id", hostel.ID, "owner_id", ownerID, "slug", hostel.Slug)
	return response_models.NewHostel(hostel), nil
}

func (s *HostelService) uniqueSlug(ctx context.Context, name, city string) (string, error) {
	base := slug.Make(name + " " + city)
	if base == "" {
		base = "hostel"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := s.hostelRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", utils.DBError("check slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *HostelService) GetHostel(ctx context.Context, hostelID uuid.UUID) (response_models.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return response_models.Hostel{}, utils.DBError("load hostel", err)
	}
	if hostel == nil || !hostel.IsActive {
		return response_models.Hostel{}, utils.NotFound("hostel", hostelID)
	}
	return response_models.NewHostel(hostel), nil
}

func (s *HostelService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]response_models.Hostel, error) {
	hostels, err := s.hostelRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.DBError("list hostels", err)
	}
	result := make([]response_models.Hostel, 0, len(hostels))
	for i := range hostels {
		result = append(result, response_models.NewHostel(&hostels[i]))
	}
	return result, nil
}

func (s *HostelService) ListFeatured(ctx context.Context, page, pageSize int) (response_models.Page[response_models.Hostel], error) {
	hostels, total, err := s.hostelRepo.ListFeatured(ctx, page, pageSize)
	if err != nil {
		return response_models.Page[response_models.Hostel]{}, utils.DBError("list featured hostels", err)
	}
	items := make([]response_models.Hostel, 0, len(hostels))
	for i := range hostels {
		items = append(items, response_models.NewHostel(&hostels[i]))
	}
	return response_models.NewPage(items, page, pageSize, total), nil
}

func (s *HostelService) SetVerified(ctx context.Context, hostelID uuid.UUID, verified bool) (response_models.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return response_models.Hostel{}, utils.DBError("load hostel", err)
	}
	if hostel == nil {
		return response_models.Hostel{}, utils.NotFound("hostel", hostelID)
	}
	if err := s.hostelRepo.SetVerified(ctx, hostelID, verified); err != nil {
		return response_models.Hostel{}, utils.DBError("verify hostel", err)
	}
	hostel.IsVerified = verified
	return response_models.NewHostel(hostel), nil
}

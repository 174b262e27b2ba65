package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type SubscriptionServiceInterface interface {
	Get(ctx context.Context, hostelID uuid.UUID) (response_models.Subscription, error)
	GetForOwner(ctx context.Context, ownerID, hostelID uuid.UUID) (response_models.Subscription, error)
	// Create opens a pending subscription at the configured monthly fee.
	Create(ctx context.Context, hostelID uuid.UUID) (response_models.Subscription, error)
	Activate(ctx context.Context, hostelID uuid.UUID, req request_models.ActivateSubscriptionRequest) (response_models.Subscription, error)
	Cancel(ctx context.Context, hostelID uuid.UUID, req request_models.CancelSubscriptionRequest) (response_models.Subscription, error)
	// ExpireStale moves active subscriptions that ended before today to expired.
	ExpireStale(ctx context.Context) (int64, error)
	IsActive(ctx context.Context, hostelID uuid.UUID) (bool, error)
}

type SubscriptionService struct {
	txManager  infra.TxManager
	subRepo    repositories.SubscriptionRepository
	hostelRepo repositories.HostelRepository
	feeMinor   int64
	currency   string
	clock      utils.Clock
	log        logger.Interface
}

func NewSubscriptionService(
	txManager infra.TxManager,
	subRepo repositories.SubscriptionRepository,
	hostelRepo repositories.HostelRepository,
	cfg *config.Config,
	clock utils.Clock,
	log logger.Interface,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		txManager:  txManager,
		subRepo:    subRepo,
		hostelRepo: hostelRepo,
		feeMinor:   cfg.Subscription.MonthlyFeeMinor,
		currency:   cfg.Placement.Currency,
		clock:      clock,
		log:        log.Named("subscription"),
	}
}

func (s *SubscriptionService) Get(ctx context.Context, hostelID uuid.UUID) (response_models.Subscription, error) {
	sub, err := s.subRepo.FindByHostel(ctx, hostelID)
	if err != nil {
		return response_models.Subscription{}, utils.DBError("load subscription", err)
	}
	if sub == nil {
		return response_models.Subscription{}, utils.NotFound("subscription for hostel", hostelID)
	}
	return response_models.NewSubscription(sub, utils.DateOf(s.clock.Now())), nil
}

func (s *SubscriptionService) GetForOwner(ctx context.Context, ownerID, hostelID uuid.UUID) (response_models.Subscription, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return response_models.Subscription{}, utils.DBError("load hostel", err)
	}
	if hostel == nil {
		return response_models.Subscription{}, utils.NotFound("hostel", hostelID)
	}
	if hostel.OwnerID != ownerID {
		return response_models.Subscription{}, utils.ErrNotHostelOwner
	}
	return s.Get(ctx, hostelID)
}

func (s *SubscriptionService) Create(ctx context.Context, hostelID uuid.UUID) (response_models.Subscription, error) {
	var sub *db_models.Subscription
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
		if err != nil {
			return utils.DBError("load hostel", err)
		}
		if hostel == nil {
			return utils.NotFound("hostel", hostelID)
		}

		existing, err := s.subRepo.FindByHostel(ctx, hostelID)
		if err != nil {
			return utils.DBError("load subscription", err)
		}
		if existing != nil {
			return utils.ErrSubscriptionExists
		}

		sub = NewPendingSubscription(hostelID, s.feeMinor, s.currency)
		if err := s.subRepo.Create(ctx, sub); err != nil {
			return utils.DBError("create subscription", err)
		}
		return nil
	})
	if err != nil {
		return response_models.Subscription{}, err
	}
	return response_models.NewSubscription(sub, utils.DateOf(s.clock.Now())), nil
}

func (s *SubscriptionService) Activate(ctx context.Context, hostelID uuid.UUID, req request_models.ActivateSubscriptionRequest) (response_models.Subscription, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.Subscription{}, err
	}

	now := s.clock.Now()
	today := utils.DateOf(now)

	var sub *db_models.Subscription
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.lockSubscription(ctx, hostelID)
		if err != nil {
			return err
		}
		if !sub.Status.CanTransitionTo(db_models.SubStatusActive) {
			return utils.NewValidationError("status", fmt.Sprintf("cannot activate a %s subscription", sub.Status))
		}

		start := today.UTC()
		end := today.AddDate(0, req.Months, 0).UTC()
		sub.Status = db_models.SubStatusActive
		sub.StartDate = &start
		sub.EndDate = &end
		sub.CancelledAt = nil
		sub.PaymentMethod = utils.SanitizeText(req.PaymentMethod)
		sub.PaymentReference = utils.SanitizeText(req.PaymentReference)
		if req.Notes != "" {
			sub.Notes = utils.SanitizeText(req.Notes)
		}

		meta, err := json.Marshal(map[string]interface{}{
			"activated_at": utils.FormatRFC3339(now),
			"months":       req.Months,
			"amount_minor": sub.MonthlyFeeMinor * int64(req.Months),
		})
		if err != nil {
			return err
		}
		sub.Metadata = datatypes.JSON(meta)

		if err := s.subRepo.Save(ctx, sub); err != nil {
			return utils.DBError("save subscription", err)
		}
		return nil
	})
	if err != nil {
		return response_models.Subscription{}, err
	}

	s.log.Infow("subscription activated", "hostel_id", hostelID, "months", req.Months, "end_date", sub.EndDate)
	return response_models.NewSubscription(sub, today), nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, hostelID uuid.UUID, req request_models.CancelSubscriptionRequest) (response_models.Subscription, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.Subscription{}, err
	}

	now := s.clock.Now()
	var sub *db_models.Subscription
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.lockSubscription(ctx, hostelID)
		if err != nil {
			return err
		}
		if !sub.Status.CanTransitionTo(db_models.SubStatusCancelled) {
			return utils.NewValidationError("status", fmt.Sprintf("cannot cancel a %s subscription", sub.Status))
		}

		sub.Status = db_models.SubStatusCancelled
		sub.CancelledAt = &now
		if req.Notes != "" {
			sub.Notes = utils.SanitizeText(req.Notes)
		}
		if err := s.subRepo.Save(ctx, sub); err != nil {
			return utils.DBError("save subscription", err)
		}
		return nil
	})
	if err != nil {
		return response_models.Subscription{}, err
	}

	s.log.Infow("subscription cancelled", "hostel_id", hostelID)
	return response_models.NewSubscription(sub, utils.DateOf(now)), nil
}

func (s *SubscriptionService) ExpireStale(ctx context.Context) (int64, error) {
	today := utils.DateOf(s.clock.Now()).UTC()
	n, err := s.subRepo.ExpireStale(ctx, today)
	if err != nil {
		return 0, utils.DBError("expire subscriptions", err)
	}
	if n > 0 {
		s.log.Infow("subscriptions expired", "count", n, "today", today)
	}
	return n, nil
}

func (s *SubscriptionService) IsActive(ctx context.Context, hostelID uuid.UUID) (bool, error) {
	sub, err := s.subRepo.FindByHostel(ctx, hostelID)
	if err != nil {
		return false, utils.DBError("load subscription", err)
	}
	if sub == nil {
		return false, nil
	}
	return sub.IsActive(utils.DateOf(s.clock.Now())), nil
}

func (s *SubscriptionService) lockSubscription(ctx context.Context, hostelID uuid.UUID) (*db_models.Subscription, error) {
	sub, err := s.subRepo.FindByHostelForUpdate(ctx, hostelID)
	if err != nil {
		return nil, utils.DBError("lock subscription", err)
	}
	if sub == nil {
		return nil, utils.NotFound("subscription for hostel", hostelID)
	}
	return sub, nil
}

// NewPendingSubscription builds the row every new hostel starts with.
func NewPendingSubscription(hostelID uuid.UUID, feeMinor int64, currency string) *db_models.Subscription {
	return &db_models.Subscription{
		HostelID:        hostelID,
		Status:          db_models.SubStatusPending,
		MonthlyFeeMinor: feeMinor,
		Currency:        currency,
	}
}

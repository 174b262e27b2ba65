package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type PlacementServiceInterface interface {
	Submit(ctx context.Context, ownerID uuid.UUID, req request_models.SubmitPlacementRequest) (response_models.PlacementRequest, error)
	Review(ctx context.Context, requestID, reviewerID uuid.UUID, req request_models.ReviewPlacementRequest) (response_models.PlacementRequest, error)
	// Sweep expires approved requests whose window ended before now and returns how many it moved.
	Sweep(ctx context.Context, now time.Time) (int, error)

	IsCurrentlyActive(ctx context.Context, hostelID uuid.UUID) (bool, error)
	CurrentRequest(ctx context.Context, hostelID uuid.UUID) (*response_models.PlacementRequest, error)
	FeaturedStatus(ctx context.Context, hostelID uuid.UUID) (response_models.FeaturedStatus, error)
	DaysRemaining(ctx context.Context, requestID uuid.UUID) (int, error)
	TotalAmount(ctx context.Context, requestID uuid.UUID) (int64, error)

	GetRequest(ctx context.Context, requestID uuid.UUID) (response_models.PlacementRequest, error)
	GetOwnerRequest(ctx context.Context, ownerID, requestID uuid.UUID) (response_models.PlacementRequest, error)
	ListOwnerRequests(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (response_models.Page[response_models.PlacementRequest], error)
	ListRequests(ctx context.Context, status string, page, pageSize int) (response_models.Page[response_models.PlacementRequest], error)
	ListHistory(ctx context.Context, hostelID uuid.UUID) ([]db_models.PlacementHistory, error)
	ListOwnerHistory(ctx context.Context, ownerID, hostelID uuid.UUID) ([]db_models.PlacementHistory, error)
}

type PlacementService struct {
	txManager   infra.TxManager
	requestRepo repositories.PlacementRequestRepository
	planRepo    repositories.IPlacementPlanRepository
	hostelRepo  repositories.HostelRepository
	historyRepo repositories.PlacementHistoryRepository
	notifier    NotificationServiceInterface
	clock       utils.Clock
	log         logger.Interface
}

func NewPlacementService(
	txManager infra.TxManager,
	requestRepo repositories.PlacementRequestRepository,
	planRepo repositories.IPlacementPlanRepository,
	hostelRepo repositories.HostelRepository,
	historyRepo repositories.PlacementHistoryRepository,
	notifier NotificationServiceInterface,
	clock utils.Clock,
	log logger.Interface,
) PlacementServiceInterface {
	return &PlacementService{
		txManager:   txManager,
		requestRepo: requestRepo,
		planRepo:    planRepo,
		hostelRepo:  hostelRepo,
		historyRepo: historyRepo,
		notifier:    notifier,
		clock:       clock,
		log:         log.Named("placement"),
	}
}

func (s *PlacementService) Submit(ctx context.Context, ownerID uuid.UUID, req request_models.SubmitPlacementRequest) (response_models.PlacementRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.PlacementRequest{}, err
	}
	hostelID := uuid.MustParse(req.HostelID)
	planID := uuid.MustParse(req.PlanID)

	now := s.clock.Now()
	var created *db_models.PlacementRequest

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// The hostel lock serializes concurrent submissions for the same hostel.
		hostel, err := s.hostelRepo.FindByIDForUpdate(ctx, hostelID)
		if err != nil {
			return utils.DBError("lock hostel", err)
		}
		if hostel == nil {
			return utils.NotFound("hostel", hostelID)
		}
		if hostel.OwnerID != ownerID {
			return utils.ErrNotHostelOwner
		}

		plan, err := s.planRepo.GetPlanInfoById(ctx, planID)
		if err != nil {
			return utils.DBError("load plan", err)
		}
		if plan == nil {
			return utils.NotFound("placement plan", planID)
		}
		if !plan.IsActive {
			return utils.NewValidationError("plan_id", "plan is not active")
		}

		pending, err := s.requestRepo.HasPending(ctx, hostelID)
		if err != nil {
			return utils.DBError("check pending request", err)
		}
		if pending {
			return utils.ErrDuplicateRequest
		}

		created = &db_models.PlacementRequest{
			HostelID:         hostelID,
			PlanID:           planID,
			OwnerID:          ownerID,
			ContactName:      utils.SanitizeText(req.ContactName),
			ContactPhone:     utils.SanitizeText(req.ContactPhone),
			ContactEmail:     utils.SanitizeText(req.ContactEmail),
			WhatsappNumber:   utils.SanitizeText(req.WhatsappNumber),
			PaymentMethod:    utils.SanitizeText(req.PaymentMethod),
			PaymentReference: utils.SanitizeText(req.PaymentReference),
			PaymentProofRef:  req.PaymentProofRef,
			PlanName:         plan.Name,
			PlanDurationDays: plan.DurationDays,
			PriceMinor:       plan.PriceMinor,
			Currency:         plan.Currency,
			Status:           db_models.PlacementPending,
			RequestedAt:      now,
		}
		return storageErr("create placement request", s.requestRepo.Create(ctx, created))
	})
	if err != nil {
		return response_models.PlacementRequest{}, err
	}

	s.log.Infow("placement request submitted",
		"request_id", created.ID,
		"hostel_id", created.HostelID,
		"plan", created.PlanName,
	)
	return response_models.NewPlacementRequest(created, now), nil
}

func (s *PlacementService) Review(ctx context.Context, requestID, reviewerID uuid.UUID, req request_models.ReviewPlacementRequest) (response_models.PlacementRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.PlacementRequest{}, err
	}

	approve := req.Decision == request_models.DecisionApprove
	notes := utils.SanitizeText(req.AdminNotes)
	now := s.clock.Now()

	var reviewed *db_models.PlacementRequest
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		pr, err := s.requestRepo.FindByID(ctx, requestID)
		if err != nil {
			return utils.DBError("load placement request", err)
		}
		if pr == nil {
			return utils.NotFound("placement request", requestID)
		}
		if pr.Status != db_models.PlacementPending {
			return utils.ErrAlreadyReviewed
		}

		hostel, err := s.hostelRepo.FindByIDForUpdate(ctx, pr.HostelID)
		if err != nil {
			return utils.DBError("lock hostel", err)
		}
		if hostel == nil && approve {
			return utils.NotFound("hostel", pr.HostelID)
		}

		update := repositories.ReviewUpdate{
			Status:     db_models.PlacementRejected,
			ReviewedAt: now,
			ReviewedBy: reviewerID,
			AdminNotes: notes,
		}
		if approve {
			start, end := pr.WindowFor(now)
			update.Status = db_models.PlacementApproved
			update.FeaturedStartAt = &start
			update.FeaturedEndAt = &end
		}

		won, err := s.requestRepo.MarkReviewed(ctx, pr.ID, update)
		if err != nil {
			return utils.DBError("mark placement reviewed", err)
		}
		if !won {
			return utils.ErrAlreadyReviewed
		}

		pr.Status = update.Status
		pr.ReviewedAt = &update.ReviewedAt
		pr.ReviewedBy = &reviewerID
		pr.AdminNotes = notes
		pr.FeaturedStartAt = update.FeaturedStartAt
		pr.FeaturedEndAt = update.FeaturedEndAt

		if approve {
			if err := s.hostelRepo.SetFeatured(ctx, pr.HostelID, true); err != nil {
				return utils.DBError("set hostel featured", err)
			}
			history := &db_models.PlacementHistory{
				HostelID:    pr.HostelID,
				RequestID:   pr.ID,
				PlanID:      pr.PlanID,
				PlanName:    pr.PlanName,
				StartAt:     *pr.FeaturedStartAt,
				EndAt:       *pr.FeaturedEndAt,
				AmountMinor: pr.TotalAmount(),
				Currency:    pr.Currency,
			}
			if err := s.historyRepo.Create(ctx, history); err != nil {
				return utils.DBError("create placement history", err)
			}
		}

		if err := s.notifyOwner(ctx, pr, hostel); err != nil {
			return err
		}

		reviewed = pr
		return nil
	})
	if err != nil {
		return response_models.PlacementRequest{}, err
	}

	s.log.Infow("placement request reviewed",
		"request_id", reviewed.ID,
		"hostel_id", reviewed.HostelID,
		"status", reviewed.Status,
		"reviewer_id", reviewerID,
	)
	return response_models.NewPlacementRequest(reviewed, now), nil
}

func (s *PlacementService) notifyOwner(ctx context.Context, pr *db_models.PlacementRequest, hostel *db_models.Hostel) error {
	hostelName := "your hostel"
	if hostel != nil {
		hostelName = hostel.Name
	}

	payload := map[string]interface{}{
		"request_id": pr.ID.String(),
		"hostel_id":  pr.HostelID.String(),
		"plan_name":  pr.PlanName,
		"status":     string(pr.Status),
	}

	if pr.Status == db_models.PlacementApproved {
		payload["featured_until"] = utils.FormatRFC3339(*pr.FeaturedEndAt)
		return s.notifier.Notify(ctx, pr.OwnerID, db_models.NotifyPlacementApproved,
			"Featured placement approved",
			fmt.Sprintf("%s is featured with %s until %s.", hostelName, pr.PlanName,
				pr.FeaturedEndAt.In(utils.BusinessLocation()).Format("02 Jan 2006 15:04")),
			payload)
	}

	msg := fmt.Sprintf("Your %s request for %s was not approved.", pr.PlanName, hostelName)
	if pr.AdminNotes != "" {
		msg += " Reason: " + pr.AdminNotes
	}
	return s.notifier.Notify(ctx, pr.OwnerID, db_models.NotifyPlacementRejected,
		"Featured placement rejected", msg, payload)
}

func (s *PlacementService) Sweep(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.requestRepo.ListExpiredIDs(ctx, now)
	if err != nil {
		return 0, utils.DBError("list expired placements", err)
	}

	var (
		transitioned int
		errs         []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		won, err := s.expireOne(ctx, id, now)
		if err != nil {
			s.log.Errorw("failed to expire placement", "request_id", id, "error", err)
			errs = append(errs, err)
			continue
		}
		if won {
			transitioned++
		}
	}

	if transitioned > 0 {
		s.log.Infow("placement sweep finished", "at", now, "transitioned", transitioned)
	}
	return transitioned, errors.Join(errs...)
}

// expireOne runs the approved -> expired transition for a single request in its own transaction.
func (s *PlacementService) expireOne(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var won bool
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		won = false

		pr, err := s.requestRepo.FindByID(ctx, id)
		if err != nil {
			return utils.DBError("load placement request", err)
		}
		if pr == nil {
			return nil
		}

		if _, err := s.hostelRepo.FindByIDForUpdate(ctx, pr.HostelID); err != nil {
			return utils.DBError("lock hostel", err)
		}

		ok, err := s.requestRepo.MarkExpired(ctx, id, now)
		if err != nil {
			return utils.DBError("mark placement expired", err)
		}
		if !ok {
			return nil
		}

		// Another approved window may still cover now.
		active, err := s.requestRepo.CountActiveWindows(ctx, pr.HostelID, now)
		if err != nil {
			return utils.DBError("count active windows", err)
		}
		if active == 0 {
			if err := s.hostelRepo.SetFeatured(ctx, pr.HostelID, false); err != nil {
				return utils.DBError("clear hostel featured", err)
			}
		}

		won = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (s *PlacementService) IsCurrentlyActive(ctx context.Context, hostelID uuid.UUID) (bool, error) {
	if _, err := s.loadHostel(ctx, hostelID); err != nil {
		return false, err
	}
	n, err := s.requestRepo.CountActiveWindows(ctx, hostelID, s.clock.Now())
	if err != nil {
		return false, utils.DBError("count active windows", err)
	}
	return n > 0, nil
}

func (s *PlacementService) CurrentRequest(ctx context.Context, hostelID uuid.UUID) (*response_models.PlacementRequest, error) {
	if _, err := s.loadHostel(ctx, hostelID); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	pr, err := s.requestRepo.FindActiveForHostel(ctx, hostelID, now)
	if err != nil {
		return nil, utils.DBError("find active placement", err)
	}
	if pr == nil {
		return nil, nil
	}
	resp := response_models.NewPlacementRequest(pr, now)
	return &resp, nil
}

func (s *PlacementService) FeaturedStatus(ctx context.Context, hostelID uuid.UUID) (response_models.FeaturedStatus, error) {
	hostel, err := s.loadHostel(ctx, hostelID)
	if err != nil {
		return response_models.FeaturedStatus{}, err
	}

	now := s.clock.Now()
	status := response_models.FeaturedStatus{
		HostelID:   hostel.ID,
		CachedFlag: hostel.IsFeatured,
	}

	pr, err := s.requestRepo.FindActiveForHostel(ctx, hostelID, now)
	if err != nil {
		return response_models.FeaturedStatus{}, utils.DBError("find active placement", err)
	}
	if pr != nil {
		status.IsFeatured = true
		status.FeaturedUntil = pr.FeaturedEndAt
		status.DaysRemaining = pr.DaysRemaining(now)
		status.CurrentRequestID = &pr.ID
	}
	return status, nil
}

func (s *PlacementService) DaysRemaining(ctx context.Context, requestID uuid.UUID) (int, error) {
	pr, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return 0, err
	}
	return pr.DaysRemaining(s.clock.Now()), nil
}

func (s *PlacementService) TotalAmount(ctx context.Context, requestID uuid.UUID) (int64, error) {
	pr, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return 0, err
	}
	return pr.TotalAmount(), nil
}

func (s *PlacementService) GetRequest(ctx context.Context, requestID uuid.UUID) (response_models.PlacementRequest, error) {
	pr, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return response_models.PlacementRequest{}, err
	}
	return response_models.NewPlacementRequest(pr, s.clock.Now()), nil
}

func (s *PlacementService) GetOwnerRequest(ctx context.Context, ownerID, requestID uuid.UUID) (response_models.PlacementRequest, error) {
	pr, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return response_models.PlacementRequest{}, err
	}
	if pr.OwnerID != ownerID {
		return response_models.PlacementRequest{}, utils.ErrNotHostelOwner
	}
	return response_models.NewPlacementRequest(pr, s.clock.Now()), nil
}

func (s *PlacementService) ListOwnerRequests(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (response_models.Page[response_models.PlacementRequest], error) {
	return s.list(ctx, repositories.PlacementRequestFilter{OwnerID: &ownerID}, page, pageSize)
}

func (s *PlacementService) ListRequests(ctx context.Context, status string, page, pageSize int) (response_models.Page[response_models.PlacementRequest], error) {
	filter := repositories.PlacementRequestFilter{}
	if status != "" {
		st := db_models.PlacementStatus(status)
		if !st.Valid() {
			return response_models.Page[response_models.PlacementRequest]{},
				utils.NewValidationError("status", "must be one of [pending approved rejected expired]")
		}
		filter.Status = &st
	}
	return s.list(ctx, filter, page, pageSize)
}

func (s *PlacementService) list(ctx context.Context, filter repositories.PlacementRequestFilter, page, pageSize int) (response_models.Page[response_models.PlacementRequest], error) {
	rows, total, err := s.requestRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return response_models.Page[response_models.PlacementRequest]{}, utils.DBError("list placement requests", err)
	}

	now := s.clock.Now()
	items := make([]response_models.PlacementRequest, 0, len(rows))
	for i := range rows {
		items = append(items, response_models.NewPlacementRequest(&rows[i], now))
	}
	return response_models.NewPage(items, page, pageSize, total), nil
}

func (s *PlacementService) ListHistory(ctx context.Context, hostelID uuid.UUID) ([]db_models.PlacementHistory, error) {
	if _, err := s.loadHostel(ctx, hostelID); err != nil {
		return nil, err
	}
	rows, err := s.historyRepo.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, utils.DBError("list placement history", err)
	}
	if rows == nil {
		rows = []db_models.PlacementHistory{}
	}
	return rows, nil
}

func (s *PlacementService) ListOwnerHistory(ctx context.Context, ownerID, hostelID uuid.UUID) ([]db_models.PlacementHistory, error) {
	hostel, err := s.loadHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	if hostel.OwnerID != ownerID {
		return nil, utils.ErrNotHostelOwner
	}
	return s.ListHistory(ctx, hostelID)
}

func (s *PlacementService) loadHostel(ctx context.Context, hostelID uuid.UUID) (*db_models.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return nil, utils.DBError("load hostel", err)
	}
	if hostel == nil {
		return nil, utils.NotFound("hostel", hostelID)
	}
	return hostel, nil
}

func (s *PlacementService) loadRequest(ctx context.Context, requestID uuid.UUID) (*db_models.PlacementRequest, error) {
	pr, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, utils.DBError("load placement request", err)
	}
	if pr == nil {
		return nil, utils.NotFound("placement request", requestID)
	}
	return pr, nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/utils"
)

type AnalyticsServiceInterface interface {
	RecordView(ctx context.Context, hostelID uuid.UUID, viewerID *uuid.UUID, ip, userAgent string) error
	// RevealContact returns the hostel's contact details. Repeat reveals from the same IP
	// inside the dedupe window are served but not counted.
	RevealContact(ctx context.Context, hostelID uuid.UUID, viewerID *uuid.UUID, ip string) (response_models.ContactDetails, error)
}

type AnalyticsService struct {
	txManager     infra.TxManager
	analyticsRepo repositories.AnalyticsRepository
	historyRepo   repositories.PlacementHistoryRepository
	hostelRepo    repositories.HostelRepository
	reveals       mem.TTLStore
	dedupeWindow  time.Duration
	clock         utils.Clock
	log           logger.Interface
}

func NewAnalyticsService(
	txManager infra.TxManager,
	analyticsRepo repositories.AnalyticsRepository,
	historyRepo repositories.PlacementHistoryRepository,
	hostelRepo repositories.HostelRepository,
	reveals mem.TTLStore,
	cfg *config.Config,
	clock utils.Clock,
	log logger.Interface,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		txManager:     txManager,
		analyticsRepo: analyticsRepo,
		historyRepo:   historyRepo,
		hostelRepo:    hostelRepo,
		reveals:       reveals,
		dedupeWindow:  cfg.Placement.RevealDedupeWindow,
		clock:         clock,
		log:           log.Named("analytics"),
	}
}

func (s *AnalyticsService) RecordView(ctx context.Context, hostelID uuid.UUID, viewerID *uuid.UUID, ip, userAgent string) error {
	if _, err := s.visibleHostel(ctx, hostelID); err != nil {
		return err
	}

	now := s.clock.Now()
	if len(userAgent) > 255 {
		userAgent = userAgent[:255]
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		view := &db_models.HostelView{
			HostelID:  hostelID,
			ViewerID:  viewerID,
			IPAddress: ip,
			UserAgent: userAgent,
			ViewedAt:  now,
		}
		if err := s.analyticsRepo.CreateView(ctx, view); err != nil {
			return utils.DBError("record view", err)
		}
		if _, err := s.historyRepo.IncrementViews(ctx, hostelID, now); err != nil {
			return utils.DBError("increment featured views", err)
		}
		return nil
	})
}

func (s *AnalyticsService) RevealContact(ctx context.Context, hostelID uuid.UUID, viewerID *uuid.UUID, ip string) (response_models.ContactDetails, error) {
	hostel, err := s.visibleHostel(ctx, hostelID)
	if err != nil {
		return response_models.ContactDetails{}, err
	}

	details := response_models.ContactDetails{
		HostelID:       hostel.ID,
		ContactPhone:   hostel.ContactPhone,
		ContactEmail:   hostel.ContactEmail,
		WhatsappNumber: hostel.WhatsappNumber,
	}

	if s.reveals.Mark(hostelID.String()+"|"+ip, s.dedupeWindow) {
		s.log.Debugw("contact reveal deduplicated", "hostel_id", hostelID, "ip", ip)
		return details, nil
	}

	now := s.clock.Now()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		reveal := &db_models.ContactReveal{
			HostelID:   hostelID,
			ViewerID:   viewerID,
			IPAddress:  ip,
			RevealedAt: now,
		}
		if err := s.analyticsRepo.CreateReveal(ctx, reveal); err != nil {
			return utils.DBError("record contact reveal", err)
		}
		if _, err := s.historyRepo.IncrementContactReveals(ctx, hostelID, now); err != nil {
			return utils.DBError("increment featured reveals", err)
		}
		return nil
	})
	if err != nil {
		return response_models.ContactDetails{}, err
	}
	return details, nil
}

func (s *AnalyticsService) visibleHostel(ctx context.Context, hostelID uuid.UUID) (*db_models.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return nil, utils.DBError("load hostel", err)
	}
	if hostel == nil || !hostel.IsActive {
		return nil, utils.NotFound("hostel", hostelID)
	}
	return hostel, nil
}

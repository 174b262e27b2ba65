package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/infra"
	"hostelhub/internal/repositories"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/utils"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	db    *gorm.DB
	cfg   *config.Config
	clock *utils.FixedClock

	tx          infra.TxManager
	hostelRepo  repositories.HostelRepository
	requestRepo repositories.PlacementRequestRepository
	planRepo    repositories.IPlacementPlanRepository
	historyRepo repositories.PlacementHistoryRepository
	subRepo     repositories.SubscriptionRepository

	notifications NotificationServiceInterface
	placements    PlacementServiceInterface
	plans         PlacementPlanServiceInterface
	subscriptions SubscriptionServiceInterface
	analytics     AnalyticsServiceInterface
	hostels       HostelServiceInterface
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	h := &harness{
		db:          db,
		cfg:         testutil.Config(),
		clock:       utils.NewFixedClock(t0),
		tx:          infra.NewTxManager(db),
		hostelRepo:  repositories.NewHostelRepository(db),
		requestRepo: repositories.NewPlacementRequestRepository(db),
		planRepo:    repositories.NewPlacementPlanRepository(db),
		historyRepo: repositories.NewPlacementHistoryRepository(db),
		subRepo:     repositories.NewSubscriptionRepository(db),
	}
	log := logger.NewNop()

	h.notifications = NewNotificationService(repositories.NewNotificationRepository(db), h.clock)
	h.placements = NewPlacementService(h.tx, h.requestRepo, h.planRepo, h.hostelRepo, h.historyRepo, h.notifications, h.clock, log)
	h.plans = NewPlacementPlanService(h.planRepo, h.tx, h.cfg, log)
	h.subscriptions = NewSubscriptionService(h.tx, h.subRepo, h.hostelRepo, h.cfg, h.clock, log)
	h.analytics = NewAnalyticsService(h.tx, repositories.NewAnalyticsRepository(db), h.historyRepo, h.hostelRepo,
		mem.NewTTLKeys(h.clock.Now), h.cfg, h.clock, log)
	h.hostels = NewHostelService(h.tx, h.hostelRepo, h.subRepo, h.cfg, log)
	return h
}

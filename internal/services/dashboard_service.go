package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dbm "hostelhub/internal/models/db_models"
	resp "hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo  repositories.DashboardRepository
	clock utils.Clock
}

func NewDashboardService(repo repositories.DashboardRepository, clock utils.Clock) DashboardService {
	return &dashboardService{repo: repo, clock: clock}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange, now time.Time) resp.TimeRange {
	out := r
	if out.End.IsZero() {
		out.End = now
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	out.Start = out.Start.UTC()
	out.End = out.End.UTC()
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error) {
	now := s.clock.Now()
	rng = normalizeRange(rng, now)

	// ---------- Core counts ----------
	var kpis resp.KPIBlock
	var err error

	if kpis.TotalHostels, err = s.repo.CountHostels(ctx); err != nil {
		return nil, utils.DBError("count hostels", err)
	}
	if kpis.FeaturedFlagCount, err = s.repo.CountFeaturedFlag(ctx); err != nil {
		return nil, utils.DBError("count featured hostels", err)
	}
	if kpis.ActiveWindows, err = s.repo.CountActiveWindows(ctx, now); err != nil {
		return nil, utils.DBError("count active windows", err)
	}

	requestCounts := []struct {
		status dbm.PlacementStatus
		dst    *int64
	}{
		{dbm.PlacementPending, &kpis.PendingRequests},
		{dbm.PlacementApproved, &kpis.ApprovedRequests},
		{dbm.PlacementRejected, &kpis.RejectedRequests},
		{dbm.PlacementExpired, &kpis.ExpiredRequests},
	}
	for _, rc := range requestCounts {
		if *rc.dst, err = s.repo.CountRequestsByStatus(ctx, rc.status); err != nil {
			return nil, utils.DBError("count placement requests", err)
		}
	}

	subCounts := []struct {
		status dbm.SubscriptionStatus
		dst    *int64
	}{
		{dbm.SubStatusPending, &kpis.PendingSubscriptions},
		{dbm.SubStatusActive, &kpis.ActiveSubscriptions},
		{dbm.SubStatusExpired, &kpis.ExpiredSubscriptions},
		{dbm.SubStatusCancelled, &kpis.CancelledSubscriptions},
	}
	for _, sc := range subCounts {
		if *sc.dst, err = s.repo.CountSubscriptionsByStatus(ctx, sc.status); err != nil {
			return nil, utils.DBError("count subscriptions", err)
		}
	}

	// ---------- Revenue ----------
	totalRevenue, err := s.repo.FeaturedRevenue(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, utils.DBError("featured revenue", err)
	}

	planRows, err := s.repo.RevenueByPlan(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, utils.DBError("revenue by plan", err)
	}
	byPlan := make([]resp.PlanRevenueItem, 0, len(planRows))
	for _, r := range planRows {
		var pct float64
		if totalRevenue > 0 {
			pct = float64(r.AmountMinor) * 100.0 / float64(totalRevenue)
		}
		byPlan = append(byPlan, resp.PlanRevenueItem{
			PlanName:    r.PlanName,
			Count:       r.Count,
			AmountMinor: r.AmountMinor,
			Percent:     pct,
		})
	}

	// ---------- Top hostels ----------
	topRows, err := s.repo.TopFeaturedHostels(ctx, rng.Start, rng.End, 10)
	if err != nil {
		return nil, utils.DBError("top featured hostels", err)
	}
	topHostels := make([]resp.TopHostel, 0, len(topRows))
	for _, r := range topRows {
		id, err := uuid.Parse(r.HostelID)
		if err != nil {
			return nil, utils.DBError("parse hostel id", err)
		}
		topHostels = append(topHostels, resp.TopHostel{
			HostelID: id,
			Name:     r.Name,
			Views:    r.Views,
			Contacts: r.Contacts,
		})
	}

	// ---------- Recent approvals ----------
	approvalRows, err := s.repo.RecentApprovals(ctx, 10)
	if err != nil {
		return nil, utils.DBError("recent approvals", err)
	}
	recent := make([]resp.RecentApproval, 0, len(approvalRows))
	for _, r := range approvalRows {
		id, err := uuid.Parse(r.RequestID)
		if err != nil {
			return nil, utils.DBError("parse request id", err)
		}
		recent = append(recent, resp.RecentApproval{
			RequestID:     id,
			HostelName:    r.HostelName,
			PlanName:      r.PlanName,
			PriceMinor:    r.PriceMinor,
			Currency:      r.Currency,
			ReviewedAt:    r.ReviewedAt,
			FeaturedUntil: r.FeaturedEnd,
		})
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs:  kpis,
		Revenue: resp.FeaturedRevenue{
			Currency:   currency,
			TotalMinor: totalRevenue,
			ByPlan:     byPlan,
		},
		TopHostels:      topHostels,
		RecentApprovals: recent,
	}, nil
}

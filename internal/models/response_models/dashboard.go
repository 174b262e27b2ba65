package response_models

import (
	"time"

	"github.com/google/uuid"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type KPIBlock struct {
	TotalHostels      int64 `json:"total_hostels"`
	FeaturedFlagCount int64 `json:"featured_flag_count"`
	ActiveWindows     int64 `json:"active_windows"`

	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
	ExpiredRequests  int64 `json:"expired_requests"`

	PendingSubscriptions   int64 `json:"pending_subscriptions"`
	ActiveSubscriptions    int64 `json:"active_subscriptions"`
	ExpiredSubscriptions   int64 `json:"expired_subscriptions"`
	CancelledSubscriptions int64 `json:"cancelled_subscriptions"`
}

type PlanRevenueItem struct {
	PlanName    string  `json:"plan_name"`
	Count       int64   `json:"count"`
	AmountMinor int64   `json:"amount_minor"`
	Percent     float64 `json:"percent"`
}

type FeaturedRevenue struct {
	Currency   string            `json:"currency"`
	TotalMinor int64             `json:"total_minor"`
	ByPlan     []PlanRevenueItem `json:"by_plan"`
}

type TopHostel struct {
	HostelID uuid.UUID `json:"hostel_id"`
	Name     string    `json:"name"`
	Views    int64     `json:"views"`
	Contacts int64     `json:"contacts"`
}

type RecentApproval struct {
	RequestID     uuid.UUID  `json:"request_id"`
	HostelName    string     `json:"hostel_name"`
	PlanName      string     `json:"plan_name"`
	PriceMinor    int64      `json:"price_minor"`
	Currency      string     `json:"currency"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	FeaturedUntil *time.Time `json:"featured_until"`
}

type DashboardReport struct {
	Range           TimeRange        `json:"range"`
	KPIs            KPIBlock         `json:"kpis"`
	Revenue         FeaturedRevenue  `json:"revenue"`
	TopHostels      []TopHostel      `json:"top_hostels"`
	RecentApprovals []RecentApproval `json:"recent_approvals"`
}

package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostelhub/internal/infra"
	dbm "hostelhub/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountHostels(ctx context.Context) (int64, error)
	CountFeaturedFlag(ctx context.Context) (int64, error)
	CountRequestsByStatus(ctx context.Context, status dbm.PlacementStatus) (int64, error)
	CountActiveWindows(ctx context.Context, now time.Time) (int64, error)
	CountSubscriptionsByStatus(ctx context.Context, status dbm.SubscriptionStatus) (int64, error)

	// Featured revenue, bucketed by when the window started
	FeaturedRevenue(ctx context.Context, start, end time.Time) (int64, error)
	RevenueByPlan(ctx context.Context, start, end time.Time) ([]PlanRevenueRow, error)

	TopFeaturedHostels(ctx context.Context, start, end time.Time, limit int) ([]TopHostelRow, error)
	RecentApprovals(ctx context.Context, limit int) ([]RecentApprovalRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type PlanRevenueRow struct {
	PlanName    string `gorm:"column:plan_name"`
	Count       int64  `gorm:"column:count"`
	AmountMinor int64  `gorm:"column:amount_minor"`
}

type TopHostelRow struct {
	HostelID string `gorm:"column:hostel_id"`
	Name     string `gorm:"column:name"`
	Views    int64  `gorm:"column:views"`
	Contacts int64  `gorm:"column:contacts"`
}

type RecentApprovalRow struct {
	RequestID   string     `gorm:"column:request_id"`
	HostelName  string     `gorm:"column:hostel_name"`
	PlanName    string     `gorm:"column:plan_name"`
	PriceMinor  int64      `gorm:"column:price_minor"`
	Currency    string     `gorm:"column:currency"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at"`
	FeaturedEnd *time.Time `gorm:"column:featured_end_at"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountHostels(ctx context.Context) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).Model(&dbm.Hostel{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFeaturedFlag(ctx context.Context) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&dbm.Hostel{}).
		Where("is_featured = ?", true).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountRequestsByStatus(ctx context.Context, status dbm.PlacementStatus) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&dbm.PlacementRequest{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActiveWindows(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&dbm.PlacementRequest{}).
		Where("status = ?", dbm.PlacementApproved).
		Where("featured_start_at <= ? AND featured_end_at >= ?", now, now).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountSubscriptionsByStatus(ctx context.Context, status dbm.SubscriptionStatus) (int64, error) {
	var n int64
	err := infra.GetTx(ctx, r.db).
		Model(&dbm.Subscription{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// ---------- Revenue ----------
func (r *dashboardRepository) FeaturedRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := infra.GetTx(ctx, r.db).
		Model(&dbm.PlacementHistory{}).
		Select("COALESCE(SUM(amount_minor), 0)").
		Where("start_at BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}

func (r *dashboardRepository) RevenueByPlan(ctx context.Context, start, end time.Time) ([]PlanRevenueRow, error) {
	var rows []PlanRevenueRow
	err := infra.GetTx(ctx, r.db).
		Table("placement_histories").
		Select("plan_name, COUNT(*) AS count, SUM(amount_minor) AS amount_minor").
		Where("start_at BETWEEN ? AND ?", start, end).
		Group("plan_name").
		Order("amount_minor DESC").
		Find(&rows).Error
	return rows, err
}

// ---------- Top hostels ----------
func (r *dashboardRepository) TopFeaturedHostels(ctx context.Context, start, end time.Time, limit int) ([]TopHostelRow, error) {
	var rows []TopHostelRow
	err := infra.GetTx(ctx, r.db).
		Table("placement_histories ph").
		Select(`
			ph.hostel_id,
			h.name,
			SUM(ph.views_during_period) AS views,
			SUM(ph.contacts_revealed_during_period) AS contacts`).
		Joins("JOIN hostels h ON h.id = ph.hostel_id").
		Where("ph.start_at BETWEEN ? AND ?", start, end).
		Group("ph.hostel_id, h.name").
		Order("views DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ---------- Recent approvals ----------
func (r *dashboardRepository) RecentApprovals(ctx context.Context, limit int) ([]RecentApprovalRow, error) {
	var rows []RecentApprovalRow
	err := infra.GetTx(ctx, r.db).
		Table("placement_requests pr").
		Select(`
			pr.id AS request_id,
			h.name AS hostel_name,
			pr.plan_name,
			pr.price_minor,
			pr.currency,
			pr.reviewed_at,
			pr.featured_end_at`).
		Joins("LEFT JOIN hostels h ON h.id = pr.hostel_id").
		Where("pr.status IN ?", []dbm.PlacementStatus{dbm.PlacementApproved, dbm.PlacementExpired}).
		Order("pr.reviewed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

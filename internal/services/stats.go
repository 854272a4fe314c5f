package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/gymportal/gym-portal/internal/models"
)

// DashboardStats is the aggregate snapshot for the admin dashboard. All the
// numbers are computed by the datastore (grouped sums and counts over
// date-range filters), not by re-reducing full result sets in the app.
type DashboardStats struct {
	TotalMembers     int64   `json:"total_members"`
	ActiveMembers    int64   `json:"active_members"`
	NewMembersToday  int64   `json:"new_members_today"`
	ExpiringThisWeek int64   `json:"expiring_this_week"`
	TodayRevenue     float64 `json:"today_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	TotalRevenue     float64 `json:"total_revenue"`
	PendingPayments  int64   `json:"pending_payments"`

	RecentMembers   []RecentMember   `json:"recent_members"`
	ExpiringMembers []ExpiringMember `json:"expiring_members"`
}

type RecentMember struct {
	ID       uint      `json:"id"`
	FullName string    `json:"full_name"`
	PlanName string    `json:"plan_name"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type ExpiringMember struct {
	ID       uint      `json:"id"`
	FullName string    `json:"full_name"`
	PlanName string    `json:"plan_name"`
	EndDate  time.Time `json:"end_date"`
	DaysLeft int       `json:"days_left"`
}

type StatsService struct{ DB *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{DB: db} }

// Dashboard computes the aggregate snapshot as of now.
func (s *StatsService) Dashboard(now time.Time) (*DashboardStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekAhead := now.AddDate(0, 0, models.ExpiringSoonDays)

	stats := &DashboardStats{}

	if err := s.DB.Model(&models.Member{}).Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Membership{}).
		Where("status = ? AND end_date >= ?", models.MembershipActive, now).
		Count(&stats.ActiveMembers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Member{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.NewMembersToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Membership{}).
		Where("end_date >= ? AND end_date <= ?", now, weekAhead).
		Count(&stats.ExpiringThisWeek).Error; err != nil {
		return nil, err
	}

	// Revenue for bounded windows comes off the immutable ledger; the all-time
	// figure sums the authoritative running totals.
	if err := s.DB.Model(&models.PaymentTransaction{}).
		Where("transaction_type != ? AND transaction_date >= ?", models.TxnRefund, startOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TodayRevenue).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.PaymentTransaction{}).
		Where("transaction_type != ? AND transaction_date >= ?", models.TxnRefund, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.MonthlyRevenue).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).
		Where("payment_status IN ?", []string{models.PaymentPending, models.PaymentPartial}).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Table("members").
		Select("members.id, members.full_name, plans.plan_name, memberships.status, members.created_at AS joined_at").
		Joins("JOIN memberships ON memberships.member_id = members.id").
		Joins("JOIN plans ON plans.id = memberships.plan_id").
		Order("members.created_at DESC").
		Limit(4).
		Scan(&stats.RecentMembers).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Table("memberships").
		Select("members.id, members.full_name, plans.plan_name, memberships.end_date").
		Joins("JOIN members ON members.id = memberships.member_id").
		Joins("JOIN plans ON plans.id = memberships.plan_id").
		Where("memberships.end_date >= ? AND memberships.end_date <= ?", now, weekAhead).
		Order("memberships.end_date ASC").
		Limit(3).
		Scan(&stats.ExpiringMembers).Error; err != nil {
		return nil, err
	}
	for i := range stats.ExpiringMembers {
		stats.ExpiringMembers[i].DaysLeft = models.DaysUntil(stats.ExpiringMembers[i].EndDate, now)
	}

	return stats, nil
}

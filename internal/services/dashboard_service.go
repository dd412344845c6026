// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/pricing"
)

type DashboardService struct {
	db  *gorm.DB
	cfg *config.Config
}

// DashboardStats is the home screen payload: proposal funnel, conversion and
// revenue trend for the operator's scope.
type DashboardStats struct {
	Proposals      ProposalStats `json:"proposals"`
	ActivePartners int64         `json:"active_partners"`
	ActivePlans    int64         `json:"active_plans"`
	Revenue        RevenueStats  `json:"revenue"`
}

type ProposalStats struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Accepted       int64   `json:"accepted"`
	Approved       int64   `json:"approved"`
	Rejected       int64   `json:"rejected"`
	Expired        int64   `json:"expired"`
	ConversionRate float64 `json:"conversion_rate"` // accepted+approved over total, percent
}

type RevenueStats struct {
	CurrentMonth  float64 `json:"current_month"`
	PreviousMonth float64 `json:"previous_month"`
	GrowthPercent float64 `json:"growth_percent"`
}

func NewDashboardService(db *gorm.DB, cfg *config.Config) *DashboardService {
	return &DashboardService{db: db, cfg: cfg}
}

// GetStats aggregates the dashboard for one account. Tiers below admin see
// only their own proposals; partners and plans are account-wide either way.
func (s *DashboardService) GetStats(accountID, operatorID uuid.UUID, tier models.ProfileTier) (*DashboardStats, error) {
	stats := &DashboardStats{}

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Proposal{}).Where("account_id = ?", accountID)
		if tier != models.TierSuperAdmin && tier != models.TierAdmin {
			q = q.Where("user_id = ?", operatorID)
		}
		return q
	}

	if err := scoped().Count(&stats.Proposals.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}

	type statusCount struct {
		Status models.ProposalStatus
		Count  int64
	}
	var counts []statusCount
	if err := scoped().
		Select("status, count(*) as count").
		Group("status").
		Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate proposal statuses: %w", err)
	}

	for _, c := range counts {
		switch c.Status {
		case models.ProposalStatusPending:
			stats.Proposals.Pending = c.Count
		case models.ProposalStatusAccepted:
			stats.Proposals.Accepted = c.Count
		case models.ProposalStatusApproved:
			stats.Proposals.Approved = c.Count
		case models.ProposalStatusRejected:
			stats.Proposals.Rejected = c.Count
		case models.ProposalStatusExpired:
			stats.Proposals.Expired = c.Count
		}
	}

	if stats.Proposals.Total > 0 {
		converted := stats.Proposals.Accepted + stats.Proposals.Approved
		stats.Proposals.ConversionRate = pricing.Round(float64(converted) / float64(stats.Proposals.Total) * 100)
	}

	if err := s.db.Model(&models.Partner{}).
		Where("account_id = ? AND active = ?", accountID, true).
		Count(&stats.ActivePartners).Error; err != nil {
		return nil, fmt.Errorf("failed to count partners: %w", err)
	}

	if err := s.db.Model(&models.Plan{}).
		Where("account_id = ? AND active = ?", accountID, true).
		Count(&stats.ActivePlans).Error; err != nil {
		return nil, fmt.Errorf("failed to count plans: %w", err)
	}

	revenue, err := s.monthlyRevenue(accountID, operatorID, tier)
	if err != nil {
		return nil, err
	}
	stats.Revenue = *revenue

	return stats, nil
}

// monthlyRevenue sums accepted and approved proposal totals for the current
// and previous calendar month and derives the growth percentage.
func (s *DashboardService) monthlyRevenue(accountID, operatorID uuid.UUID, tier models.ProfileTier) (*RevenueStats, error) {
	now := time.Now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previousStart := currentStart.AddDate(0, -1, 0)

	sum := func(from, to time.Time) (float64, error) {
		q := s.db.Model(&models.Proposal{}).
			Where("account_id = ?", accountID).
			Where("status IN ?", []models.ProposalStatus{models.ProposalStatusAccepted, models.ProposalStatusApproved}).
			Where("updated_at >= ? AND updated_at < ?", from, to)
		if tier != models.TierSuperAdmin && tier != models.TierAdmin {
			q = q.Where("user_id = ?", operatorID)
		}

		var total *float64
		if err := q.Select("sum(total)").Scan(&total).Error; err != nil {
			return 0, fmt.Errorf("failed to sum revenue: %w", err)
		}
		if total == nil {
			return 0, nil
		}
		return *total, nil
	}

	current, err := sum(currentStart, currentStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	previous, err := sum(previousStart, currentStart)
	if err != nil {
		return nil, err
	}

	growth := 0.0
	if previous > 0 {
		growth = pricing.Round((current - previous) / previous * 100)
	} else if current > 0 {
		growth = 100
	}

	return &RevenueStats{
		CurrentMonth:  pricing.Round(current),
		PreviousMonth: pricing.Round(previous),
		GrowthPercent: growth,
	}, nil
}

// internal/jobs/expiry.go
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
)

// ExpirySweeper flips pending proposals past their validity window to
// expired. Runs on the configured cron spec, hourly by default.
type ExpirySweeper struct {
	db   *gorm.DB
	cfg  *config.Config
	cron *cron.Cron
}

func NewExpirySweeper(db *gorm.DB, cfg *config.Config) *ExpirySweeper {
	return &ExpirySweeper{
		db:   db,
		cfg:  cfg,
		cron: cron.New(),
	}
}

func (s *ExpirySweeper) Start() error {
	spec := s.cfg.Portal.ExpirySweepSpec
	if spec == "" {
		spec = "@hourly"
	}

	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}

	s.cron.Start()
	logrus.WithField("spec", spec).Info("Proposal expiry sweeper started")
	return nil
}

func (s *ExpirySweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep expires every pending proposal whose creation date plus validade days
// is behind now. One UPDATE, no per-row round trips.
func (s *ExpirySweeper) Sweep() {
	result := s.db.Model(&models.Proposal{}).
		Where("status = ?", models.ProposalStatusPending).
		Where("created_at + validade * INTERVAL '1 day' < NOW()").
		Update("status", models.ProposalStatusExpired)

	if result.Error != nil {
		logrus.WithError(result.Error).Error("Proposal expiry sweep failed")
		return
	}

	if result.RowsAffected > 0 {
		logrus.WithField("expired", result.RowsAffected).Info("Proposals expired")
	}
}

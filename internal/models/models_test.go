// internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlanCovers(t *testing.T) {
	plan := Plan{InboxCount: 5, AgentCount: 10, AutomationCount: 3}

	assert.True(t, plan.Covers(5, 10, 3))
	assert.True(t, plan.Covers(0, 0, 0))
	assert.False(t, plan.Covers(6, 10, 3))
	assert.False(t, plan.Covers(5, 11, 3))
	assert.False(t, plan.Covers(5, 10, 4))
}

func TestProposalCommercialEditable(t *testing.T) {
	for _, status := range []ProposalStatus{
		ProposalStatusPending, ProposalStatusAccepted,
		ProposalStatusRejected, ProposalStatusExpired,
	} {
		p := Proposal{Status: status}
		assert.True(t, p.CommercialEditable(), "status %s should stay editable", status)
	}

	locked := Proposal{Status: ProposalStatusApproved}
	assert.False(t, locked.CommercialEditable())
}

func TestProposalExpiresAt(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := Proposal{ValidityDays: 10}
	p.CreatedAt = created

	assert.Equal(t, created.AddDate(0, 0, 10), p.ExpiresAt())
}

func TestUserPasswordRoundTrip(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("Portal123"))
	assert.NotEqual(t, "Portal123", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("Portal123"))
	assert.Error(t, u.CheckPassword("wrong"))
}

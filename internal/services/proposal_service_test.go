// internal/services/proposal_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/pricing"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

func TestValidateSubmission(t *testing.T) {
	valid := func() *models.Proposal {
		return &models.Proposal{
			ClientName:  "Maria Souza",
			ClientEmail: "maria@empresa.com.br",
			Total:       121.50,
		}
	}

	t.Run("valid proposal passes", func(t *testing.T) {
		assert.NoError(t, ValidateSubmission(valid()))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		p := valid()
		p.ClientName = "   "
		assert.ErrorIs(t, ValidateSubmission(p), ErrClientName)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		p := valid()
		p.ClientEmail = "not-an-email"
		assert.ErrorIs(t, ValidateSubmission(p), ErrClientEmail)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		p := valid()
		p.ClientEmail = ""
		assert.ErrorIs(t, ValidateSubmission(p), ErrClientEmail)
	})

	t.Run("total at the floor rejected", func(t *testing.T) {
		p := valid()
		p.Total = pricing.MinimumTotal
		assert.ErrorIs(t, ValidateSubmission(p), ErrBelowMinimum)
	})

	t.Run("total just above the floor passes", func(t *testing.T) {
		p := valid()
		p.Total = pricing.MinimumTotal + 0.01
		assert.NoError(t, ValidateSubmission(p))
	})
}

func TestClassifyConfirmation(t *testing.T) {
	cases := []struct {
		name   string
		status models.ProposalStatus
		active bool
		want   ConfirmationState
	}{
		{"pending is open", models.ProposalStatusPending, true, ConfirmationOpen},
		{"accepted already confirmed", models.ProposalStatusAccepted, true, ConfirmationAlreadyConfirmed},
		{"approved already confirmed", models.ProposalStatusApproved, true, ConfirmationAlreadyConfirmed},
		{"rejected is closed", models.ProposalStatusRejected, true, ConfirmationClosed},
		{"expired is closed", models.ProposalStatusExpired, true, ConfirmationClosed},
		{"inactive hides the proposal", models.ProposalStatusPending, false, ConfirmationNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Proposal{Status: tc.status, Active: tc.active}
			assert.Equal(t, tc.want, ClassifyConfirmation(p))
		})
	}
}

func TestApplyTotals(t *testing.T) {
	p := &models.Proposal{}
	totals := pricing.ComputeTotals(100, []pricing.Line{{Quantity: 1, UnitPrice: 35}}, -10, 0)
	ApplyTotals(p, totals)

	assert.Equal(t, 100.0, p.Subtotal)
	assert.Equal(t, 35.0, p.AddonTotal)
	assert.Equal(t, -13.5, p.DiscountValue)
	assert.Equal(t, 121.50, p.Total)
}

func TestRecomputeDerived(t *testing.T) {
	p := &models.Proposal{
		Subtotal:    100,
		AddonTotal:  35,
		DiscountPct: -10,
		CouponPct:   -5,
	}
	RecomputeDerived(p)

	assert.Equal(t, -13.5, p.DiscountValue)
	assert.Equal(t, -6.75, p.CouponValue)
	assert.Equal(t, p.Subtotal+p.AddonTotal+p.DiscountValue+p.CouponValue, 114.75)
}

func TestSaveAcceptsPartialCouponInput(t *testing.T) {
	// A draft saved while the operator is still typing the code must not
	// fail validation; the code resolves to zero discount instead.
	req := &SaveProposalRequest{CouponCode: "ABC123"}
	assert.NoError(t, utils.ValidateStruct(req))
}

func TestResolveCouponPartialCode(t *testing.T) {
	cfg := &config.Config{}
	svc := NewProposalService(nil, cfg, NewPartnerService(nil, cfg, nil), nil)

	pct, code, err := svc.resolveCoupon("ABC123")
	assert.NoError(t, err)
	assert.Zero(t, pct)
	assert.Equal(t, "ABC123", code)
}

func TestBuildAddonRows(t *testing.T) {
	crm := uuid.New()
	voip := uuid.New()
	reports := uuid.New()
	unitPrices := map[uuid.UUID]float64{crm: 10, voip: 25, reports: 5}

	t.Run("zero and negative quantities never persist", func(t *testing.T) {
		lines, rows := BuildAddonRows([]AddonLineRequest{
			{AddonID: crm, Quantity: 2},
			{AddonID: voip, Quantity: 0},
			{AddonID: reports, Quantity: -1},
		}, unitPrices)

		assert.Len(t, lines, 1)
		assert.Len(t, rows, 1)
		assert.Equal(t, crm, rows[0].AddonID)
		assert.Equal(t, 2, rows[0].Quantity)
		assert.Equal(t, 10.0, rows[0].UnitPrice)
	})

	t.Run("re-save replaces the line set wholesale", func(t *testing.T) {
		_, _ = BuildAddonRows([]AddonLineRequest{
			{AddonID: crm, Quantity: 2},
			{AddonID: voip, Quantity: 1},
		}, unitPrices)

		_, rows := BuildAddonRows([]AddonLineRequest{
			{AddonID: reports, Quantity: 3},
		}, unitPrices)

		// Nothing from the earlier selection survives
		assert.Len(t, rows, 1)
		assert.Equal(t, reports, rows[0].AddonID)
		assert.Equal(t, 3, rows[0].Quantity)
	})

	t.Run("empty selection clears every line", func(t *testing.T) {
		lines, rows := BuildAddonRows(nil, unitPrices)
		assert.Empty(t, lines)
		assert.Empty(t, rows)
	})
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 10.0, discountPercent("10%", 0))
	assert.Equal(t, -10.5, discountPercent("-10,5 %", -3))
	assert.Equal(t, -7.0, discountPercent("", -7))
	assert.Equal(t, -7.0, discountPercent("   ", -7))
}

func TestNewDraftDefaults(t *testing.T) {
	svc := NewProposalService(nil, &config.Config{
		Portal: config.PortalConfig{ProposalValidityDays: 10},
	}, nil, nil)

	accountID := uuid.New()
	userID := uuid.New()
	draft := svc.NewDraft(accountID, userID, models.TierPartner)

	assert.True(t, draft.Active)
	assert.Equal(t, accountID, draft.AccountID)
	assert.Equal(t, userID, draft.UserID)
	assert.Equal(t, models.TierPartner, draft.Tier)
	assert.Equal(t, models.ProposalStatusPending, draft.Status)
	assert.Equal(t, 10, draft.ValidityDays)
	assert.NotEmpty(t, draft.CompanyName)
	assert.Equal(t, uuid.Nil, draft.ID)
}

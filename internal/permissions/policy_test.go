// internal/permissions/policy_test.go
package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
)

func TestAssignableTiersExcludesFixedSet(t *testing.T) {
	for _, operator := range []models.ProfileTier{
		models.TierSuperAdmin,
		models.TierAdmin,
		models.TierPartner,
		models.TierReseller,
	} {
		tiers := AssignableTiers(operator)
		assert.NotContains(t, tiers, models.TierSuperAdmin)
		assert.NotContains(t, tiers, models.TierAdmin)
		assert.NotContains(t, tiers, models.TierAffiliate)
		assert.NotContains(t, tiers, operator, "operator %s must not target itself", operator)
	}
}

func TestAssignableTiersForPartner(t *testing.T) {
	tiers := AssignableTiers(models.TierPartner)
	assert.Equal(t, []models.ProfileTier{models.TierReseller, models.TierClient}, tiers)
}

func TestCanAssign(t *testing.T) {
	assert.True(t, CanAssign(models.TierPartner, models.TierClient))
	assert.True(t, CanAssign(models.TierAdmin, models.TierPartner))
	assert.False(t, CanAssign(models.TierPartner, models.TierPartner))
	assert.False(t, CanAssign(models.TierPartner, models.TierAdmin))
	assert.False(t, CanAssign(models.TierReseller, models.TierAffiliate))
}

func TestCanDeniesUnknown(t *testing.T) {
	assert.False(t, Can("ghost", ModuleProposals, "view"))
	assert.False(t, Can(models.TierClient, ModuleAccounts, "view"))
	assert.False(t, Can(models.TierPartner, ModuleProposals, "promote"))
}

func TestCapabilityMatrix(t *testing.T) {
	assert.True(t, Can(models.TierSuperAdmin, ModuleFinancial, "delete"))
	assert.True(t, Can(models.TierPartner, ModuleProposals, "create"))
	assert.False(t, Can(models.TierPartner, ModuleProposals, "delete"))
	assert.False(t, Can(models.TierAdmin, ModuleFinancial, "edit"))
	assert.True(t, Can(models.TierReseller, ModulePlans, "view"))
	assert.False(t, Can(models.TierAffiliate, ModuleProposals, "edit"))
}

func TestCapabilitiesCopies(t *testing.T) {
	caps := Capabilities(models.TierPartner)
	caps[ModuleProposals] = Capability{}
	assert.True(t, Can(models.TierPartner, ModuleProposals, "view"))
}

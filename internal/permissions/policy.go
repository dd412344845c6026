// internal/permissions/policy.go
package permissions

import (
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
)

// Module names the portal areas a capability applies to.
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModuleProposals Module = "proposals"
	ModulePartners  Module = "partners"
	ModuleAccounts  Module = "accounts"
	ModulePlans     Module = "plans"
	ModuleFinancial Module = "financial"
)

// Capability is the per-module action set granted to a profile tier.
type Capability struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
	View   bool `json:"view"`
}

var full = Capability{Create: true, Edit: true, Delete: true, View: true}
var readWrite = Capability{Create: true, Edit: true, View: true}
var readOnly = Capability{View: true}

// capabilityMatrix is the per-tier capability table. It replaces the inline
// per-screen checks of the legacy portal with a single auditable policy.
var capabilityMatrix = map[models.ProfileTier]map[Module]Capability{
	models.TierSuperAdmin: {
		ModuleDashboard: full,
		ModuleProposals: full,
		ModulePartners:  full,
		ModuleAccounts:  full,
		ModulePlans:     full,
		ModuleFinancial: full,
	},
	models.TierAdmin: {
		ModuleDashboard: full,
		ModuleProposals: full,
		ModulePartners:  full,
		ModuleAccounts:  full,
		ModulePlans:     full,
		ModuleFinancial: readOnly,
	},
	models.TierAffiliate: {
		ModuleDashboard: readOnly,
		ModuleProposals: readOnly,
	},
	models.TierPartner: {
		ModuleDashboard: readOnly,
		ModuleProposals: readWrite,
		ModulePartners:  readWrite,
		ModuleAccounts:  readWrite,
		ModulePlans:     readOnly,
		ModuleFinancial: readOnly,
	},
	models.TierReseller: {
		ModuleDashboard: readOnly,
		ModuleProposals: readWrite,
		ModulePlans:     readOnly,
	},
	models.TierClient: {
		ModuleDashboard: readOnly,
	},
}

// neverAssignable lists the tiers no proposal may target, regardless of
// operator. Fixed rule set, not configurable.
var neverAssignable = map[models.ProfileTier]bool{
	models.TierSuperAdmin: true,
	models.TierAdmin:      true,
	models.TierAffiliate:  true,
}

// tierOrder keeps AssignableTiers output stable.
var tierOrder = []models.ProfileTier{
	models.TierSuperAdmin,
	models.TierAdmin,
	models.TierAffiliate,
	models.TierPartner,
	models.TierReseller,
	models.TierClient,
}

// Can reports whether the tier may perform the action on the module. Unknown
// tiers and modules deny.
func Can(tier models.ProfileTier, module Module, action string) bool {
	caps, ok := capabilityMatrix[tier]
	if !ok {
		return false
	}
	c, ok := caps[module]
	if !ok {
		return false
	}
	switch action {
	case "create":
		return c.Create
	case "edit":
		return c.Edit
	case "delete":
		return c.Delete
	case "view":
		return c.View
	}
	return false
}

// Capabilities returns the operator's full capability table for the
// permissions endpoint.
func Capabilities(tier models.ProfileTier) map[Module]Capability {
	caps := make(map[Module]Capability, len(capabilityMatrix[tier]))
	for m, c := range capabilityMatrix[tier] {
		caps[m] = c
	}
	return caps
}

// AssignableTiers returns the profile tiers an operator may target with a
// proposal: everything except the always-excluded tiers and the operator's
// own tier.
func AssignableTiers(operator models.ProfileTier) []models.ProfileTier {
	out := make([]models.ProfileTier, 0, len(tierOrder))
	for _, t := range tierOrder {
		if neverAssignable[t] || t == operator {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CanAssign reports whether the operator may target the tier.
func CanAssign(operator, target models.ProfileTier) bool {
	if neverAssignable[target] || target == operator {
		return false
	}
	return true
}

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccountLocked      = "auth.account_locked"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthPasswordReset      = "auth.password_reset"
	KeyAuthPasswordChanged    = "auth.password_changed"
	KeyAuthAccessDenied       = "auth.access_denied"

	// Users / Accounts
	KeyUserNotFound       = "user.not_found"
	KeyUserExists         = "user.exists"
	KeyUserCreated        = "user.created"
	KeyUserUpdated        = "user.updated"
	KeyUserLocked         = "user.locked"
	KeyUserUnlocked       = "user.unlocked"
	KeyUserThemeUpdated   = "user.theme_updated"
	KeyUserProfileUpdated = "user.profile_updated"

	// Partners
	KeyPartnerNotFound = "partner.not_found"
	KeyPartnerCreated  = "partner.created"
	KeyPartnerUpdated  = "partner.updated"
	KeyPartnerDeleted  = "partner.deleted"

	// Plans
	KeyPlanNotFound  = "plan.not_found"
	KeyPlanCreated   = "plan.created"
	KeyPlanUpdated   = "plan.updated"
	KeyPlanDeleted   = "plan.deleted"
	KeyAddonNotFound = "addon.not_found"

	// Proposals
	KeyProposalNotFound      = "proposal.not_found"
	KeyProposalSaved         = "proposal.saved"
	KeyProposalDeleted       = "proposal.deleted"
	KeyProposalSent          = "proposal.sent"
	KeyProposalLocked        = "proposal.locked"
	KeyProposalBelowMinimum  = "proposal.below_minimum"
	KeyProposalMissingClient = "proposal.missing_client"
	KeyProposalStatusUpdated = "proposal.status_updated"

	// Public confirmation
	KeyConfirmationNotFound  = "confirmation.not_found"
	KeyConfirmationConfirmed = "confirmation.already_confirmed"
	KeyConfirmationClosed    = "confirmation.closed"
	KeyConfirmationDone      = "confirmation.done"
	KeyConfirmationTerms     = "confirmation.terms_required"

	// Payments
	KeyPaymentSuccess       = "payment.success"
	KeyPaymentFailed        = "payment.failed"
	KeyPaymentNotEligible   = "payment.not_eligible"
	KeyPaymentAlreadyPaid   = "payment.already_paid"
	KeyPaymentInvalidAmount = "payment.invalid_amount"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationEmail    = "validation.invalid_email"
)

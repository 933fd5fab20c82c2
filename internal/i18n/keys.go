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
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthOAuthRedirect      = "auth.oauth_redirect"
	KeyAdminAccessDenied      = "auth.admin_access_denied"
	KeyRoleMismatch           = "auth.role_mismatch"

	// Company
	KeyCompanyCreated       = "company.created"
	KeyCompanyUpdated       = "company.updated"
	KeyCompanyExists        = "company.exists"
	KeyCompanyNotFound      = "company.not_found"
	KeyCompanyNotOnboarded  = "company.not_onboarded"
	KeyCompanyProfileLocked = "company.profile_locked"
	KeyCompanyNotApproved   = "company.not_approved"
	KeyScriptNotActive      = "company.script_not_active"
	KeyBrandingUpdated      = "company.branding_updated"
	KeyDocumentUploaded     = "company.document_uploaded"

	// Verification workflow
	KeyReviewStarted          = "verification.review_started"
	KeyCompanyApproved        = "verification.approved"
	KeyCompanyRejected        = "verification.rejected"
	KeyRejectionReasonMissing = "verification.reason_required"
	KeyReviewConflict         = "verification.conflict"

	// Tracking
	KeyTrackingUnknownID   = "tracking.unknown_id"
	KeyTrackingRecorded    = "tracking.event_recorded"
	KeyScriptVerified      = "tracking.script_verified"
	KeyScriptNotDetected   = "tracking.script_not_detected"
	KeyVerificationDone    = "tracking.verification_done"
	KeyVerificationFailed  = "tracking.verification_failed"

	// Billing
	KeyBillingUnavailable = "billing.unavailable"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
)

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Session
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeySessionExpired         = "auth.session_expired"
	KeySessionLoading         = "auth.session_loading"
	KeyAccessDenied           = "auth.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserBanned   = "user.banned"
	KeyUserUnbanned = "user.unbanned"

	// Reviews
	KeyVerificationApproved = "verification.approved"
	KeyVerificationRejected = "verification.rejected"
	KeySubmissionApproved   = "submission.approved"
	KeySubmissionRejected   = "submission.rejected"

	// Settings
	KeySettingsUpdated   = "settings.updated"
	KeyRecipientsUpdated = "settings.recipients_updated"

	// Reports
	KeyWinnerNotified = "report.winner_notified"

	// Exports
	KeyExportRequested = "export.requested"
	KeyExportCompleted = "export.completed"
	KeyExportFailed    = "export.failed"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationEmail    = "validation.invalid_email"

	// Transport
	KeyBackendUnavailable = "backend.unavailable"
	KeyRateLimited        = "rate_limit.exceeded"
)

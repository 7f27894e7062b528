package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyFullName = "user_full_name"
	ContextKeyEmail    = "user_email"
)

const MinPasswordLength = 8

// Pagination bounds for the activity feed.
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Upload limits in bytes.
const (
	MaxSubmissionSize   = 10 * 1024 * 1024
	MaxProfilePhotoSize = 5 * 1024 * 1024
)

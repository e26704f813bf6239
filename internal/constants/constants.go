package constants

// Session / context keys
const (
	SessionCookieName     = "ops_session"
	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Business day handling
const (
	// DateLayout is the canonical business-date format used in submission
	// and missing-task rows.
	DateLayout = "2006-01-02"

	// DefaultBusinessDayCutoffHour is the wall-clock hour at which a new
	// business day starts. Submissions before this hour count toward the
	// previous date, so a 01:30 closing submission lands on the day the
	// shift started.
	DefaultBusinessDayCutoffHour = 6
)

// PeriodCodeClosing is the period excluded from the chef role's due-count:
// the kitchen shift ends before front-of-house closing.
const PeriodCodeClosing = "closing"

package constants

import "time"

// Cooldown windows for rate-limited actions, in hours.
// The gate reads the stored last-action timestamp at call time; there is no
// scheduled expiry.
const (
	IdeaCreateLimitHours  = 12
	IdeaEditLimitHours    = 12
	ProfileEditLimitHours = 24
	PfpChangeLimitHours   = 24
)

// ConfirmationCodeTTL is the validity window for email-confirmation and
// password-recovery codes.
const ConfirmationCodeTTL = 15 * time.Minute

package common

import "time"

// CheckTimeLimit is the generic cooldown gate: given the stored timestamp
// of the last rate-limited action and the window in hours, it fails with a
// RateLimited error while the window is still open. A nil timestamp always
// passes; the first action is always allowed.
//
// Callers update the timestamp to "now" inside the same transaction as the
// gated mutation, so a failed operation never charges the cooldown.
func CheckTimeLimit(last *time.Time, limitHours int) error {
	if last == nil {
		return nil
	}

	limit := time.Duration(limitHours) * time.Hour
	elapsed := time.Since(*last)

	if elapsed < limit {
		remaining := int((limit - elapsed).Minutes())
		return NewRateLimited(remaining)
	}

	return nil
}

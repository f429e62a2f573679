package entities

import "time"

// ConfirmationCode is a short-lived single-use code row. The value is
// plaintext for email confirmation and a bcrypt hash for password recovery.
type ConfirmationCode struct {
	ID        string    `db:"id"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

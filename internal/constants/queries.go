package constants

const (
	InsertConfirmationCode = `
	INSERT INTO confirmation_codes (id, code, created_at)
	VALUES ($1, $2, $3)
	RETURNING id, code, created_at
	`

	GetConfirmationCodeById = `
	SELECT * FROM confirmation_codes WHERE id = $1
	`

	DeleteConfirmationCode = `
	DELETE FROM confirmation_codes WHERE id = $1
	`

	DeleteExpiredConfirmationCodes = `
	DELETE FROM confirmation_codes WHERE created_at < $1
	`
)

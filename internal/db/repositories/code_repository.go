package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"startup-hub/backend/internal/constants"
	"startup-hub/backend/internal/models/entities"
)

// CodeRepository stores short-lived confirmation codes on the sqlx handle.
type CodeRepository struct {
	db *sqlx.DB
}

func NewCodeRepository(db *sqlx.DB) *CodeRepository {
	return &CodeRepository{db}
}

func (r *CodeRepository) Insert(ctx context.Context, code string) (*entities.ConfirmationCode, error) {
	row := entities.ConfirmationCode{}

	err := r.db.QueryRowxContext(ctx, constants.InsertConfirmationCode,
		uuid.New().String(),
		code,
		time.Now().UTC(),
	).StructScan(&row)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *CodeRepository) GetByID(ctx context.Context, id string) (*entities.ConfirmationCode, error) {
	var code entities.ConfirmationCode

	err := r.db.QueryRowxContext(ctx, constants.GetConfirmationCodeById, id).StructScan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &code, nil
}

func (r *CodeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, constants.DeleteConfirmationCode, id)
	return err
}

// PurgeExpired drops codes older than the validity window.
func (r *CodeRepository) PurgeExpired(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-constants.ConfirmationCodeTTL)
	_, err := r.db.ExecContext(ctx, constants.DeleteExpiredConfirmationCodes, cutoff)
	return err
}

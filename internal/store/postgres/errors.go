package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
)

// mapError converts pgx errors into core errors, keeping the original text
// so core.MapError can still match driver messages.
func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	subject := entity
	if id != nil {
		subject = fmt.Sprintf("%s %v", entity, id)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", subject, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", subject, core.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w: %s", subject, core.ErrLanguageSetNotFound, pgErr.Message)
		case "23505": // unique_violation
			return fmt.Errorf("%s: duplicate key: %w", subject, err)
		}
	}

	return fmt.Errorf("%s: %w", subject, err)
}

package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

// isUniqueViolation reports whether err is a unique-constraint failure on the
// named constraint ("" matches any).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// notFound translates pgx.ErrNoRows into the domain sentinel so handlers can
// map it to 404 without knowing about pgx.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}

func derefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

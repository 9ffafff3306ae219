package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write collides with a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a write breaks a foreign key.
	ErrReferenced = errors.New("record is referenced")
	// ErrStale is returned when a conditional write finds the row already changed.
	ErrStale = errors.New("record was modified concurrently")
)

// pgCode extracts the SQLSTATE of a Postgres error, or "" for anything else.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify maps driver errors onto the repository sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return errors.Join(ErrDuplicate, err)
	case pgerrcode.ForeignKeyViolation:
		return errors.Join(ErrReferenced, err)
	}
	return err
}

// MapError converts repository sentinels into domain errors. resource names
// the entity in NotFound messages.
func MapError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperrors.NewNotFound(resource)
	case errors.Is(err, ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", nil)
	case errors.Is(err, ErrReferenced):
		return apperrors.NewConflict(resource+" is referenced by other records", nil)
	case errors.Is(err, ErrStale):
		return apperrors.NewConflict(resource+" was modified concurrently, retry the request", nil)
	}
	return apperrors.MapError(err)
}

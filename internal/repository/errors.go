package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	// ErrQuery marks any failed read: connectivity, bad statement, missing view.
	ErrQuery = errors.New("query failed")
	// ErrViewNotFound is returned when the view does not exist. It also matches ErrQuery.
	ErrViewNotFound = fmt.Errorf("%w: view not found", ErrQuery)
)

// MapPgError translates a failed read into the repository taxonomy.
// The original error stays in the chain so logs keep the Postgres details.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrQuery) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedTable:
			return fmt.Errorf("%w: %w", ErrViewNotFound, err)
		case pgerrcode.UndefinedColumn, pgerrcode.SyntaxError:
			return fmt.Errorf("%w: malformed statement: %w", ErrQuery, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrQuery, err)
}

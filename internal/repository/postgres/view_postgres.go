package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/repository"
	"github.com/rs/zerolog"
)

// q is the minimal query surface I need; *pgxpool.Pool implements it.
// Each call borrows a pooled connection only for the statement itself.
type q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type viewRepository struct {
	db  q
	log zerolog.Logger
}

// NewViewRepository builds the read-only view adapter.
func NewViewRepository(db q, logger zerolog.Logger) repository.ViewRepository {
	l := logger.With().Str("module", "repository").Str("component", "views").Logger()
	return &viewRepository{db: db, log: l}
}

func (r *viewRepository) Rows(ctx context.Context, rq model.ReportQuery) ([]model.Row, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	st, err := buildSelect(rq)
	if err != nil {
		return nil, fmt.Errorf("%w: build select on %s: %w", repository.ErrQuery, rq.View, err)
	}
	rows, err := r.db.Query(ctx, st.sql, st.args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	out := make([]model.Row, len(maps))
	for i, m := range maps {
		out[i] = model.Row(m)
	}
	r.log.Debug().Str("view", rq.View).Int("page", rq.Page).Int("rows", len(out)).Msg("view rows read")
	return out, nil
}

func (r *viewRepository) Count(ctx context.Context, view string, predicates []model.Predicate) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	st, err := buildCount(view, predicates)
	if err != nil {
		return 0, fmt.Errorf("%w: build count on %s: %w", repository.ErrQuery, view, err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, st.sql, st.args...).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return int(total), nil
}

var _ repository.ViewRepository = (*viewRepository)(nil)

var _ q = (*pgxpool.Pool)(nil)

var errNilPool = errors.New("pgx pool is nil")

// ensureDB guards against wiring mistakes; a nil pool is a query failure, not a panic.
func ensureDB(db q) error {
	if db == nil {
		return fmt.Errorf("%w: %w", repository.ErrQuery, errNilPool)
	}
	if p, ok := db.(*pgxpool.Pool); ok && p == nil {
		return fmt.Errorf("%w: %w", repository.ErrQuery, errNilPool)
	}
	return nil
}

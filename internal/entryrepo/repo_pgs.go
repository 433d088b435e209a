// Package entryrepo manages repository layer of entries.
package entryrepo

import (
	"context"
	"errors"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/dbpkg"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (user_id, amount, kind)
VALUES
    ($1, $2, $3)
RETURNING id, user_id, amount, kind, created_at
`

// Create records the balance change and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.UserID, arg.Amount, arg.Kind)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.Kind,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "entries_user_id_fkey" {
			return domain.Entry{}, domain.ErrUserNotFound
		}

		return domain.Entry{}, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT id, user_id, amount, kind, created_at FROM entries
WHERE user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified page of entries of the given user, oldest first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.Kind,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

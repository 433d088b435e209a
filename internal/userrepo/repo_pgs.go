// Package userrepo manages repository layer of users.
//
// Besides the account data it owns the buyer deposit, mutated only through
// Deposit, Debit and Reset.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/dbpkg"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const columns = `id, username, hashed_password, deposit, role, enabled, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.Deposit,
		&u.Role,
		&u.Enabled,
		&u.CreatedAt,
	)

	return u, err
}

// mapError logs err and translates it into a domain error.
func mapError(ctx context.Context, err error) error {
	l := zerolog.Ctx(ctx)
	l.Error().Err(err).Send()

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "users_username_key":
			return domain.ErrUsernameAlreadyExists
		case "users_deposit_check":
			return domain.ErrInsufficientFunds
		case "users_role_check":
			return domain.ErrInvalidRole
		}
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO users (
    id,
    username,
    hashed_password,
    role,
    enabled
) VALUES (
    $1, $2, $3, $4, $5
) RETURNING ` + columns

// Create creates the user with zero deposit and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.Username,
		arg.HashedPassword,
		arg.Role,
		arg.Enabled,
	)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const getQuery = `
SELECT ` + columns + `
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const getForUpdateQuery = getQuery + `FOR UPDATE`

// GetForUpdate returns the user with the given id and locks its row until the
// surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const getByUsernameQuery = `
SELECT ` + columns + `
FROM users
WHERE username = $1
`

// GetByUsername returns the user with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getByUsernameQuery, username))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const depositQuery = `
UPDATE users
SET deposit = deposit + $1
WHERE id = $2
RETURNING ` + columns

// Deposit credits amount cents to the user deposit and returns the changed user.
func (r *RepoPGS) Deposit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, depositQuery, amount, id))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const debitQuery = `
UPDATE users
SET deposit = deposit - $1
WHERE id = $2
RETURNING ` + columns

// Debit subtracts amount cents from the user deposit and returns the changed user.
//
// A debit below zero is rejected by the users_deposit_check constraint and
// reported as domain.ErrInsufficientFunds.
func (r *RepoPGS) Debit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, debitQuery, amount, id))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

const resetQuery = `
UPDATE users
SET deposit = 0
WHERE id = $1
RETURNING ` + columns

// Reset sets the user deposit to zero and returns the changed user.
func (r *RepoPGS) Reset(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, resetQuery, id))
	if err != nil {
		return domain.User{}, mapError(ctx, err)
	}

	return u, nil
}

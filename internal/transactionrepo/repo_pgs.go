// Package transactionrepo manages repository layer of buyer transactions.
//
// It joins the user, product and entry repositories under a single database
// transaction so a deposit, purchase or reset is applied in full or not at all.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/entryrepo"
	"github.com/go-petr/pet-vending/internal/productrepo"
	"github.com/go-petr/pet-vending/internal/userrepo"
	"github.com/go-petr/pet-vending/pkg/dbpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// WithTx runs fn inside a database transaction. Every method called with the
// context passed to fn takes part in that transaction.
func (r *RepoPGS) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := dbpkg.WithTx(ctx, r.conn, fn)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Debug().Err(err).Msg("transaction rolled back")
	}

	return err
}

func (r *RepoPGS) users(ctx context.Context) *userrepo.RepoPGS {
	return userrepo.NewRepoPGS(dbpkg.FromContext(ctx, r.conn))
}

func (r *RepoPGS) products(ctx context.Context) *productrepo.RepoPGS {
	return productrepo.NewRepoPGS(dbpkg.FromContext(ctx, r.conn))
}

func (r *RepoPGS) entries(ctx context.Context) *entryrepo.RepoPGS {
	return entryrepo.NewRepoPGS(dbpkg.FromContext(ctx, r.conn))
}

// GetUserForUpdate returns the user and locks its row.
func (r *RepoPGS) GetUserForUpdate(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.users(ctx).GetForUpdate(ctx, id)
}

// Deposit credits amount cents to the user deposit.
func (r *RepoPGS) Deposit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error) {
	return r.users(ctx).Deposit(ctx, id, amount)
}

// Debit subtracts amount cents from the user deposit.
func (r *RepoPGS) Debit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error) {
	return r.users(ctx).Debit(ctx, id, amount)
}

// Reset sets the user deposit to zero.
func (r *RepoPGS) Reset(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.users(ctx).Reset(ctx, id)
}

// GetProductForUpdate returns the product and locks its row.
func (r *RepoPGS) GetProductForUpdate(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return r.products(ctx).GetForUpdate(ctx, id)
}

// Decrement lowers the product quantity by n.
func (r *RepoPGS) Decrement(ctx context.Context, id uuid.UUID, n int32) (domain.Product, error) {
	return r.products(ctx).Decrement(ctx, id, n)
}

// CreateEntry records a balance change.
func (r *RepoPGS) CreateEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	return r.entries(ctx).Create(ctx, arg)
}

// ListEntries returns a page of the user balance changes.
func (r *RepoPGS) ListEntries(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	return r.entries(ctx).List(ctx, arg)
}

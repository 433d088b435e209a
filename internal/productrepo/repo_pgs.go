// Package productrepo manages repository layer of products.
package productrepo

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

// RepoPGS facilitates product repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns product RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const columns = `id, name, cost, quantity, description, seller_id, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Cost,
		&p.Quantity,
		&p.Description,
		&p.SellerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	return p, err
}

func mapError(ctx context.Context, err error) error {
	l := zerolog.Ctx(ctx)
	l.Error().Err(err).Send()

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProductNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "products_quantity_check":
			return domain.ErrInsufficientStock
		case "products_cost_check":
			return domain.ErrInvalidCost
		case "products_seller_id_fkey":
			return domain.ErrUserNotFound
		}
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO products (
    id,
    name,
    cost,
    quantity,
    description,
    seller_id
) VALUES (
    $1, $2, $3, $4, $5, $6
) RETURNING ` + columns

// Create creates the product and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.Name,
		arg.Cost,
		arg.Quantity,
		arg.Description,
		arg.SellerID,
	)

	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

const getQuery = `
SELECT ` + columns + `
FROM products
WHERE id = $1
`

// Get returns the product with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

const getForUpdateQuery = getQuery + `FOR UPDATE`

// GetForUpdate returns the product with the given id and locks its row until
// the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

const listQuery = `
SELECT ` + columns + `
FROM products
ORDER BY created_at, id
LIMIT $1
OFFSET $2
`

// List returns the specified page of products ordered by creation time.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListProductsParams) ([]domain.Product, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Product{}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, p)
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

const updateQuery = `
UPDATE products
SET
    name = COALESCE($2, name),
    cost = COALESCE($3, cost),
    quantity = COALESCE($4, quantity),
    description = COALESCE($5, description),
    updated_at = now()
WHERE id = $1
RETURNING ` + columns

// Update changes the fields set in arg and returns the changed product.
func (r *RepoPGS) Update(ctx context.Context, id uuid.UUID, arg domain.UpdateProductParams) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, updateQuery,
		id,
		arg.Name,
		arg.Cost,
		arg.Quantity,
		arg.Description,
	)

	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

const deleteQuery = `
DELETE FROM products
WHERE id = $1
RETURNING ` + columns

// Delete removes the product and returns its last state.
func (r *RepoPGS) Delete(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, deleteQuery, id))
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

const decrementQuery = `
UPDATE products
SET quantity = quantity - $1, updated_at = now()
WHERE id = $2
RETURNING ` + columns

// Decrement lowers the product quantity by n and returns the changed product.
//
// Going below zero is rejected by the products_quantity_check constraint and
// reported as domain.ErrInsufficientStock.
func (r *RepoPGS) Decrement(ctx context.Context, id uuid.UUID, n int32) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, decrementQuery, n, id))
	if err != nil {
		return domain.Product{}, mapError(ctx, err)
	}

	return p, nil
}

// Package helpers provides functions to seed the database in integration tests.
package helpers

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/entryrepo"
	"github.com/go-petr/pet-vending/internal/productrepo"
	"github.com/go-petr/pet-vending/internal/userrepo"
	"github.com/go-petr/pet-vending/pkg/dbpkg"
	"github.com/go-petr/pet-vending/pkg/passpkg"
	"github.com/go-petr/pet-vending/pkg/randompkg"
	"github.com/google/uuid"
)

// Password is the plain password of every seeded user.
const Password = "secret-password"

var (
	hashOnce       sync.Once
	hashedPassword string
	errHash        error
)

func passwordHash(t *testing.T) string {
	t.Helper()

	hashOnce.Do(func() {
		hashedPassword, errHash = passpkg.Hash(Password)
	})

	if errHash != nil {
		t.Fatalf("passpkg.Hash(%q) returned error: %v", Password, errHash)
	}

	return hashedPassword
}

// SeedUser creates an enabled user with the given role and a random username.
func SeedUser(t *testing.T, db dbpkg.SQLInterface, role domain.Role) domain.User {
	t.Helper()

	arg := domain.CreateUserParams{
		ID:             uuid.New(),
		Username:       randompkg.Username(),
		HashedPassword: passwordHash(t),
		Role:           role,
		Enabled:        true,
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedBuyer creates a buyer holding deposit cents.
func SeedBuyer(t *testing.T, db dbpkg.SQLInterface, deposit int64) domain.User {
	t.Helper()

	user := SeedUser(t, db, domain.RoleBuyer)
	if deposit == 0 {
		return user
	}

	user, err := userrepo.NewRepoPGS(db).Deposit(context.Background(), user.ID, deposit)
	if err != nil {
		t.Fatalf("userRepo.Deposit(context.Background(), %v, %d) returned error: %v", user.ID, deposit, err)
	}

	return user
}

// SeedSeller creates a seller.
func SeedSeller(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	return SeedUser(t, db, domain.RoleSeller)
}

// SeedProduct creates a product of the given seller.
func SeedProduct(t *testing.T, db dbpkg.SQLInterface, sellerID uuid.UUID, cost int64, quantity int32) domain.Product {
	t.Helper()

	arg := domain.CreateProductParams{
		ID:          uuid.New(),
		Name:        randompkg.ProductName(),
		Cost:        cost,
		Quantity:    quantity,
		Description: randompkg.String(20),
		SellerID:    sellerID,
	}

	product, err := productrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("productRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return product
}

// SeedProducts creates count random products of the given seller.
//
// The result is sorted the way the database lists products created within a
// single transaction: they share created_at, so the id decides.
func SeedProducts(t *testing.T, db dbpkg.SQLInterface, sellerID uuid.UUID, count int) []domain.Product {
	t.Helper()

	products := make([]domain.Product, count)
	for i := range products {
		products[i] = SeedProduct(t, db, sellerID, randompkg.Cost(), int32(randompkg.IntBetween(1, 100)))
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ID.String() < products[j].ID.String()
	})

	return products
}

// SeedEntries records count random deposit entries of the given user.
func SeedEntries(t *testing.T, db dbpkg.SQLInterface, count int, userID uuid.UUID) []domain.Entry {
	t.Helper()

	entryRepo := entryrepo.NewRepoPGS(db)
	entries := make([]domain.Entry, count)

	for i := range entries {
		arg := domain.CreateEntryParams{UserID: userID, Amount: randompkg.Cost(), Kind: domain.EntryDeposit}

		entry, err := entryRepo.Create(context.Background(), arg)
		if err != nil {
			t.Fatalf("entryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
		}

		entries[i] = entry
	}

	return entries
}

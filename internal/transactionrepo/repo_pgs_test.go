//go:build integration

package transactionrepo_test

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/integrationtest"
	"github.com/go-petr/pet-vending/internal/integrationtest/helpers"
	"github.com/go-petr/pet-vending/internal/transactionrepo"
	"github.com/go-petr/pet-vending/pkg/configpkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestWithTxCommits(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(db)
	ctx := context.Background()

	buyer := helpers.SeedBuyer(t, db, 100)
	seller := helpers.SeedSeller(t, db)
	product := helpers.SeedProduct(t, db, seller.ID, 20, 3)

	err := repo.WithTx(ctx, func(ctx context.Context) error {
		if _, err := repo.GetUserForUpdate(ctx, buyer.ID); err != nil {
			return err
		}

		if _, err := repo.GetProductForUpdate(ctx, product.ID); err != nil {
			return err
		}

		if _, err := repo.Debit(ctx, buyer.ID, 40); err != nil {
			return err
		}

		if _, err := repo.Decrement(ctx, product.ID, 2); err != nil {
			return err
		}

		_, err := repo.CreateEntry(ctx, domain.CreateEntryParams{UserID: buyer.ID, Amount: -40, Kind: domain.EntryPurchase})

		return err
	})
	if err != nil {
		t.Fatalf("repo.WithTx() returned error: %v", err)
	}

	gotBuyer, err := repo.GetUserForUpdate(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("repo.GetUserForUpdate() returned error: %v", err)
	}

	if gotBuyer.Deposit != 60 {
		t.Errorf("buyer.Deposit = %d, want 60", gotBuyer.Deposit)
	}

	gotProduct, err := repo.GetProductForUpdate(ctx, product.ID)
	if err != nil {
		t.Fatalf("repo.GetProductForUpdate() returned error: %v", err)
	}

	if gotProduct.Quantity != 1 {
		t.Errorf("product.Quantity = %d, want 1", gotProduct.Quantity)
	}

	entries, err := repo.ListEntries(ctx, domain.ListEntriesParams{UserID: buyer.ID, Limit: 10})
	if err != nil {
		t.Fatalf("repo.ListEntries() returned error: %v", err)
	}

	if len(entries) != 1 || entries[0].Amount != -40 {
		t.Errorf("entries = %+v, want a single -40 entry", entries)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(db)
	ctx := context.Background()

	buyer := helpers.SeedBuyer(t, db, 100)
	seller := helpers.SeedSeller(t, db)
	product := helpers.SeedProduct(t, db, seller.ID, 20, 3)

	err := repo.WithTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Deposit(ctx, buyer.ID, 50); err != nil {
			return err
		}

		if _, err := repo.Debit(ctx, buyer.ID, 20); err != nil {
			return err
		}

		// Nested calls join the outer transaction and fail it.
		return repo.WithTx(ctx, func(ctx context.Context) error {
			_, err := repo.Decrement(ctx, product.ID, 4)
			return err
		})
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("repo.WithTx() returned error: %v, want %v", err, domain.ErrInsufficientStock)
	}

	gotBuyer, err := repo.GetUserForUpdate(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("repo.GetUserForUpdate() returned error: %v", err)
	}

	if gotBuyer.Deposit != 100 {
		t.Errorf("buyer.Deposit = %d, want 100", gotBuyer.Deposit)
	}

	gotProduct, err := repo.GetProductForUpdate(ctx, product.ID)
	if err != nil {
		t.Fatalf("repo.GetProductForUpdate() returned error: %v", err)
	}

	if gotProduct.Quantity != 3 {
		t.Errorf("product.Quantity = %d, want 3", gotProduct.Quantity)
	}
}

func TestResetInsideTx(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(db)
	ctx := context.Background()

	buyer := helpers.SeedBuyer(t, db, 185)

	var got domain.User

	err := repo.WithTx(ctx, func(ctx context.Context) error {
		var err error

		got, err = repo.Reset(ctx, buyer.ID)

		return err
	})
	if err != nil {
		t.Fatalf("repo.WithTx() returned error: %v", err)
	}

	if got.Deposit != 0 {
		t.Errorf("Reset() deposit = %d, want 0", got.Deposit)
	}
}

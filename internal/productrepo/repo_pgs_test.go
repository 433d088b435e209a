//go:build integration

package productrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/integrationtest"
	"github.com/go-petr/pet-vending/internal/integrationtest/helpers"
	"github.com/go-petr/pet-vending/internal/productrepo"
	"github.com/go-petr/pet-vending/pkg/configpkg"
	"github.com/go-petr/pet-vending/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
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

func TestCreate(t *testing.T) {
	testCases := []struct {
		name    string
		arg     func(tx *sql.Tx) domain.CreateProductParams
		wantErr error
	}{
		{
			name: "OK",
			arg: func(tx *sql.Tx) domain.CreateProductParams {
				seller := helpers.SeedSeller(t, tx)
				return domain.CreateProductParams{
					ID:          uuid.New(),
					Name:        randompkg.ProductName(),
					Cost:        randompkg.Cost(),
					Quantity:    int32(randompkg.IntBetween(1, 100)),
					Description: randompkg.String(20),
					SellerID:    seller.ID,
				}
			},
		},
		{
			name: "ErrUserNotFound",
			arg: func(tx *sql.Tx) domain.CreateProductParams {
				return domain.CreateProductParams{
					ID:       uuid.New(),
					Name:     randompkg.ProductName(),
					Cost:     randompkg.Cost(),
					Quantity: 1,
					SellerID: uuid.New(),
				}
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "NegativeQuantity",
			arg: func(tx *sql.Tx) domain.CreateProductParams {
				seller := helpers.SeedSeller(t, tx)
				return domain.CreateProductParams{
					ID:       uuid.New(),
					Name:     randompkg.ProductName(),
					Cost:     randompkg.Cost(),
					Quantity: -1,
					SellerID: seller.ID,
				}
			},
			wantErr: domain.ErrInsufficientStock,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			arg := tc.arg(tx)
			productRepo := productrepo.NewRepoPGS(tx)

			got, err := productRepo.Create(context.Background(), arg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("productRepo.Create(context.Background(), %+v) returned error: %v, want %v", arg, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				return
			}

			want := domain.Product{
				ID:          arg.ID,
				Name:        arg.Name,
				Cost:        arg.Cost,
				Quantity:    arg.Quantity,
				Description: arg.Description,
				SellerID:    arg.SellerID,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("productRepo.Create(context.Background(), %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	seller := helpers.SeedSeller(t, tx)
	want := helpers.SeedProduct(t, tx, seller.ID, 50, 10)
	productRepo := productrepo.NewRepoPGS(tx)

	got, err := productRepo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("productRepo.Get(context.Background(), %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("productRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
	}

	got, err = productRepo.GetForUpdate(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("productRepo.GetForUpdate(context.Background(), %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("productRepo.GetForUpdate(context.Background(), %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
	}

	id := uuid.New()
	if _, err := productRepo.Get(context.Background(), id); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("productRepo.Get(context.Background(), %v) returned error: %v, want %v", id, err, domain.ErrProductNotFound)
	}
}

func TestList(t *testing.T) {
	const productsCount = 15

	testCases := []struct {
		name   string
		limit  int32
		offset int32
		want   func(products []domain.Product) []domain.Product
	}{
		{
			name:  "ListAll",
			limit: 100,
			want:  func(products []domain.Product) []domain.Product { return products },
		},
		{
			name:  "Limit5",
			limit: 5,
			want:  func(products []domain.Product) []domain.Product { return products[:5] },
		},
		{
			name:   "Limit5Offset5",
			limit:  5,
			offset: 5,
			want:   func(products []domain.Product) []domain.Product { return products[5:10] },
		},
		{
			name:   "OffsetPastEnd",
			limit:  5,
			offset: productsCount,
			want:   func(products []domain.Product) []domain.Product { return []domain.Product{} },
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)

			// rows created inside one transaction share now(), so the id breaks the tie
			seller := helpers.SeedSeller(t, tx)
			products := helpers.SeedProducts(t, tx, seller.ID, productsCount)
			want := tc.want(products)

			productRepo := productrepo.NewRepoPGS(tx)
			arg := domain.ListProductsParams{Limit: tc.limit, Offset: tc.offset}

			got, err := productRepo.List(context.Background(), arg)
			if err != nil {
				t.Fatalf("productRepo.List(context.Background(), %+v) returned error: %v", arg, err)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("productRepo.List(context.Background(), %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	seller := helpers.SeedSeller(t, tx)
	product := helpers.SeedProduct(t, tx, seller.ID, 50, 10)
	productRepo := productrepo.NewRepoPGS(tx)

	cost := int64(75)
	arg := domain.UpdateProductParams{Cost: &cost}

	got, err := productRepo.Update(context.Background(), product.ID, arg)
	if err != nil {
		t.Fatalf("productRepo.Update(context.Background(), %v, %+v) returned error: %v", product.ID, arg, err)
	}

	want := product
	want.Cost = cost

	ignoreFields := cmpopts.IgnoreFields(domain.Product{}, "UpdatedAt")
	if diff := cmp.Diff(want, got, ignoreFields); diff != "" {
		t.Errorf("productRepo.Update(context.Background(), %v, %+v) returned unexpected difference (-want +got):\n%s", product.ID, arg, diff)
	}

	id := uuid.New()
	if _, err := productRepo.Update(context.Background(), id, arg); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("productRepo.Update(context.Background(), %v, %+v) returned error: %v, want %v", id, arg, err, domain.ErrProductNotFound)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	seller := helpers.SeedSeller(t, tx)
	product := helpers.SeedProduct(t, tx, seller.ID, 50, 10)
	productRepo := productrepo.NewRepoPGS(tx)

	if _, err := productRepo.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("productRepo.Delete(context.Background(), %v) returned error: %v", product.ID, err)
	}

	if _, err := productRepo.Get(context.Background(), product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("productRepo.Get(context.Background(), %v) after delete returned error: %v, want %v", product.ID, err, domain.ErrProductNotFound)
	}

	if _, err := productRepo.Delete(context.Background(), product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("second productRepo.Delete(context.Background(), %v) returned error: %v, want %v", product.ID, err, domain.ErrProductNotFound)
	}
}

func TestDecrement(t *testing.T) {
	testCases := []struct {
		name         string
		n            int32
		wantQuantity int32
		wantErr      error
	}{
		{
			name:         "OK",
			n:            4,
			wantQuantity: 6,
		},
		{
			name:         "WholeStock",
			n:            10,
			wantQuantity: 0,
		},
		{
			name:    "ErrInsufficientStock",
			n:       11,
			wantErr: domain.ErrInsufficientStock,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			seller := helpers.SeedSeller(t, tx)
			product := helpers.SeedProduct(t, tx, seller.ID, 50, 10)
			productRepo := productrepo.NewRepoPGS(tx)

			got, err := productRepo.Decrement(context.Background(), product.ID, tc.n)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("productRepo.Decrement(context.Background(), %v, %d) returned error: %v, want %v", product.ID, tc.n, err, tc.wantErr)
			}

			if tc.wantErr == nil && got.Quantity != tc.wantQuantity {
				t.Errorf("got.Quantity = %d, want %d", got.Quantity, tc.wantQuantity)
			}
		})
	}
}

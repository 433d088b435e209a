//go:build integration

package userrepo_test

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
	"github.com/go-petr/pet-vending/internal/userrepo"
	"github.com/go-petr/pet-vending/pkg/configpkg"
	"github.com/go-petr/pet-vending/pkg/passpkg"
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
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	testCases := []struct {
		name    string
		arg     func(tx *sql.Tx) domain.CreateUserParams
		wantErr error
	}{
		{
			name: "OK",
			arg: func(tx *sql.Tx) domain.CreateUserParams {
				return domain.CreateUserParams{
					ID:             uuid.New(),
					Username:       randompkg.Username(),
					HashedPassword: hashedPassword,
					Role:           domain.RoleBuyer,
					Enabled:        true,
				}
			},
		},
		{
			name: "ErrUsernameAlreadyExists",
			arg: func(tx *sql.Tx) domain.CreateUserParams {
				user := helpers.SeedBuyer(t, tx, 0)
				return domain.CreateUserParams{
					ID:             uuid.New(),
					Username:       user.Username,
					HashedPassword: hashedPassword,
					Role:           domain.RoleSeller,
					Enabled:        true,
				}
			},
			wantErr: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "ErrInvalidRole",
			arg: func(tx *sql.Tx) domain.CreateUserParams {
				return domain.CreateUserParams{
					ID:             uuid.New(),
					Username:       randompkg.Username(),
					HashedPassword: hashedPassword,
					Role:           "ADMIN",
					Enabled:        true,
				}
			},
			wantErr: domain.ErrInvalidRole,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			arg := tc.arg(tx)
			userRepo := userrepo.NewRepoPGS(tx)

			got, err := userRepo.Create(context.Background(), arg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v, want %v", arg, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				return
			}

			want := domain.User{
				ID:             arg.ID,
				Username:       arg.Username,
				HashedPassword: arg.HashedPassword,
				Deposit:        0,
				Role:           arg.Role,
				Enabled:        arg.Enabled,
				CreatedAt:      time.Now(),
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("userRepo.Create(context.Background(), %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	want := helpers.SeedBuyer(t, tx, 150)
	userRepo := userrepo.NewRepoPGS(tx)

	got, err := userRepo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("userRepo.Get(context.Background(), %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("userRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
	}

	got, err = userRepo.GetByUsername(context.Background(), want.Username)
	if err != nil {
		t.Fatalf("userRepo.GetByUsername(context.Background(), %v) returned error: %v", want.Username, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("userRepo.GetByUsername(context.Background(), %v) returned unexpected difference (-want +got):\n%s", want.Username, diff)
	}

	got, err = userRepo.GetForUpdate(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("userRepo.GetForUpdate(context.Background(), %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("userRepo.GetForUpdate(context.Background(), %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	userRepo := userrepo.NewRepoPGS(tx)
	id := uuid.New()

	if _, err := userRepo.Get(context.Background(), id); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("userRepo.Get(context.Background(), %v) returned error: %v, want %v", id, err, domain.ErrUserNotFound)
	}

	if _, err := userRepo.GetByUsername(context.Background(), "absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("userRepo.GetByUsername(context.Background(), absent) returned error: %v, want %v", err, domain.ErrNotFound)
	}

	if _, err := userRepo.Deposit(context.Background(), id, 5); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("userRepo.Deposit(context.Background(), %v, 5) returned error: %v, want %v", id, err, domain.ErrUserNotFound)
	}

	if _, err := userRepo.Reset(context.Background(), id); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("userRepo.Reset(context.Background(), %v) returned error: %v, want %v", id, err, domain.ErrUserNotFound)
	}
}

func TestDepositDebitReset(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	user := helpers.SeedBuyer(t, tx, 1000)
	userRepo := userrepo.NewRepoPGS(tx)
	ctx := context.Background()

	got, err := userRepo.Deposit(ctx, user.ID, 185)
	if err != nil {
		t.Fatalf("userRepo.Deposit(ctx, %v, 185) returned error: %v", user.ID, err)
	}

	if got.Deposit != 1185 {
		t.Errorf("got.Deposit = %d, want 1185", got.Deposit)
	}

	got, err = userRepo.Debit(ctx, user.ID, 235)
	if err != nil {
		t.Fatalf("userRepo.Debit(ctx, %v, 235) returned error: %v", user.ID, err)
	}

	if got.Deposit != 950 {
		t.Errorf("got.Deposit = %d, want 950", got.Deposit)
	}

	// deposit may not go below zero
	if _, err = userRepo.Debit(ctx, user.ID, 955); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("userRepo.Debit(ctx, %v, 955) returned error: %v, want %v", user.ID, err, domain.ErrInsufficientFunds)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	user := helpers.SeedBuyer(t, tx, 1000)
	userRepo := userrepo.NewRepoPGS(tx)

	for i := 0; i < 2; i++ {
		got, err := userRepo.Reset(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("userRepo.Reset(context.Background(), %v) returned error: %v", user.ID, err)
		}

		if got.Deposit != 0 {
			t.Errorf("got.Deposit = %d after reset #%d, want 0", got.Deposit, i+1)
		}
	}
}

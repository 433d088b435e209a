// Package transactionservice manages business logic layer of buyer transactions:
// deposits, purchases and deposit resets.
package transactionservice

import (
	"bytes"
	"context"
	"math"
	"sort"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/coinpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUserForUpdate(ctx context.Context, id uuid.UUID) (domain.User, error)
	Deposit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error)
	Debit(ctx context.Context, id uuid.UUID, amount int64) (domain.User, error)
	Reset(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetProductForUpdate(ctx context.Context, id uuid.UUID) (domain.Product, error)
	Decrement(ctx context.Context, id uuid.UUID, n int32) (domain.Product, error)
	CreateEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error)
	ListEntries(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New return transaction service struct to manage buyer transactions.
func New(tr Repo) *Service {
	return &Service{
		repo: tr,
	}
}

// Deposit adds the coins to the buyer deposit and returns the new balance.
func (s *Service) Deposit(ctx context.Context, buyerID uuid.UUID, coins []int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	amount, ok := coinpkg.Sum(coins)
	if !ok {
		l.Info().Ints64("coins", coins).Msg("rejected deposit")
		return 0, domain.ErrInvalidCoin
	}

	var balance int64

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		buyer, err := s.repo.Deposit(ctx, buyerID, amount)
		if err != nil {
			return err
		}

		_, err = s.repo.CreateEntry(ctx, domain.CreateEntryParams{
			UserID: buyerID,
			Amount: amount,
			Kind:   domain.EntryDeposit,
		})
		if err != nil {
			return err
		}

		balance = buyer.Deposit

		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Reset sets the buyer deposit to zero and returns the changed buyer.
func (s *Service) Reset(ctx context.Context, buyerID uuid.UUID) (domain.User, error) {
	var result domain.User

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		buyer, err := s.repo.GetUserForUpdate(ctx, buyerID)
		if err != nil {
			return err
		}

		result, err = s.repo.Reset(ctx, buyerID)
		if err != nil {
			return err
		}

		if buyer.Deposit == 0 {
			return nil
		}

		_, err = s.repo.CreateEntry(ctx, domain.CreateEntryParams{
			UserID: buyerID,
			Amount: -buyer.Deposit,
			Kind:   domain.EntryReset,
		})

		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	return result, nil
}

// Buy purchases the requested products with the buyer deposit.
//
// Lines are fulfilled in input order. The purchase is all or nothing: every
// line is resolved and checked before the first balance or stock change, and
// any failure leaves both untouched. The deposit must be strictly greater
// than the total cost. The remaining deposit is reported as coin change.
func (s *Service) Buy(ctx context.Context, buyerID uuid.UUID, lines []domain.PurchaseLine) (domain.PurchaseResult, error) {
	l := zerolog.Ctx(ctx)

	if len(lines) == 0 {
		return domain.PurchaseResult{}, domain.ErrEmptyPurchase
	}

	requested := make(map[uuid.UUID]int64, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.PurchaseResult{}, domain.ErrInvalidQuantity
		}

		requested[line.ProductID] += int64(line.Quantity)
	}

	var result domain.PurchaseResult

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		buyer, err := s.repo.GetUserForUpdate(ctx, buyerID)
		if err != nil {
			return err
		}

		products, err := s.lockProducts(ctx, requested)
		if err != nil {
			return err
		}

		for id, n := range requested {
			if int64(products[id].Quantity) < n {
				l.Info().Str("product_id", id.String()).Int64("requested", n).Msg("not enough stock")
				return domain.ErrInsufficientStock
			}
		}

		costs, total, ok := lineCosts(products, lines)
		if !ok {
			l.Info().Int64("deposit", buyer.Deposit).Msg("purchase total overflows")
			return domain.ErrInsufficientFunds
		}

		if buyer.Deposit <= total {
			l.Info().Int64("deposit", buyer.Deposit).Int64("total", total).Msg("not enough funds")
			return domain.ErrInsufficientFunds
		}

		result, err = s.fulfil(ctx, buyer, lines, costs)

		return err
	})
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	return result, nil
}

// lockProducts reads and locks the requested products in ascending id order,
// so that concurrent purchases sharing products cannot deadlock.
func (s *Service) lockProducts(ctx context.Context, requested map[uuid.UUID]int64) (map[uuid.UUID]domain.Product, error) {
	ids := make([]uuid.UUID, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	products := make(map[uuid.UUID]domain.Product, len(ids))

	for _, id := range ids {
		p, err := s.repo.GetProductForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}

		products[id] = p
	}

	return products, nil
}

// lineCosts returns the cost of every line and their total. It reports false
// if any line cost or the total does not fit in int64.
func lineCosts(products map[uuid.UUID]domain.Product, lines []domain.PurchaseLine) ([]int64, int64, bool) {
	costs := make([]int64, len(lines))

	var total int64

	for i, line := range lines {
		unit, n := products[line.ProductID].Cost, int64(line.Quantity)
		if unit < 0 || (unit != 0 && n > math.MaxInt64/unit) {
			return nil, 0, false
		}

		costs[i] = unit * n

		if costs[i] > math.MaxInt64-total {
			return nil, 0, false
		}

		total += costs[i]
	}

	return costs, total, true
}

// fulfil applies the checked purchase lines one by one.
func (s *Service) fulfil(ctx context.Context, buyer domain.User, lines []domain.PurchaseLine, costs []int64) (domain.PurchaseResult, error) {
	result := domain.PurchaseResult{
		BoughtProducts: make([]domain.BoughtProduct, 0, len(lines)),
		Balance:        buyer.Deposit,
	}

	for i, line := range lines {
		cost := costs[i]

		updatedBuyer, err := s.repo.Debit(ctx, buyer.ID, cost)
		if err != nil {
			return domain.PurchaseResult{}, err
		}

		product, err := s.repo.Decrement(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return domain.PurchaseResult{}, err
		}

		_, err = s.repo.CreateEntry(ctx, domain.CreateEntryParams{
			UserID: buyer.ID,
			Amount: -cost,
			Kind:   domain.EntryPurchase,
		})
		if err != nil {
			return domain.PurchaseResult{}, err
		}

		result.BoughtProducts = append(result.BoughtProducts, domain.BoughtProduct{
			Product:  product,
			Quantity: line.Quantity,
			Cost:     cost,
		})
		result.TotalSpent += cost
		result.Balance = updatedBuyer.Deposit
	}

	result.Changes = coinpkg.CalculateChange(result.Balance)

	if rest := result.Balance - coinpkg.Total(result.Changes); rest != 0 {
		zerolog.Ctx(ctx).Debug().Int64("balance", result.Balance).Int64("rest", rest).Msg("balance not payable in coins")
	}

	return result, nil
}

// ListEntries returns a page of the buyer balance changes.
func (s *Service) ListEntries(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	return s.repo.ListEntries(ctx, arg)
}

package productservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-petr/pet-vending/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func randomProduct(sellerID uuid.UUID) domain.Product {
	return domain.Product{
		ID:          uuid.New(),
		Name:        randompkg.ProductName(),
		Cost:        randompkg.Cost(),
		Quantity:    int32(randompkg.IntBetween(1, 100)),
		Description: randompkg.String(20),
		SellerID:    sellerID,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
		UpdatedAt:   time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	sellerID := uuid.New()
	product := randomProduct(sellerID)

	testCases := []struct {
		name          string
		cost          int64
		quantity      int32
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Product, err error)
	}{
		{
			name:     "OK",
			cost:     product.Cost,
			quantity: product.Quantity,
			buildStubs: func(repo *MockRepo) {
				want := domain.CreateProductParams{
					Name:        product.Name,
					Cost:        product.Cost,
					Quantity:    product.Quantity,
					Description: product.Description,
					SellerID:    sellerID,
				}
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error) {
						if diff := cmp.Diff(want, arg, cmpopts.IgnoreFields(domain.CreateProductParams{}, "ID")); diff != "" {
							t.Errorf("repo.Create() got unexpected params (-want +got):\n%s", diff)
						}
						require.NotEqual(t, uuid.Nil, arg.ID)
						return product, nil
					})
			},
			checkResponse: func(res domain.Product, err error) {
				require.NoError(t, err)
				require.Equal(t, product, res)
			},
		},
		{
			name:     "NegativeCost",
			cost:     -5,
			quantity: 1,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCost)
				require.Empty(t, res)
			},
		},
		{
			name:     "CostAboveMax",
			cost:     domain.MaxCost + 1,
			quantity: 1,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCost)
				require.Empty(t, res)
			},
		},
		{
			name:     "NegativeQuantity",
			cost:     5,
			quantity: -1,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidQuantity)
				require.Empty(t, res)
			},
		},
		{
			name:     "SellerNotFound",
			cost:     5,
			quantity: 1,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Product{}, domain.ErrUserNotFound)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrUserNotFound)
				require.Empty(t, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)
			tc.checkResponse(service.Create(context.Background(), sellerID, product.Name, tc.cost, tc.quantity, product.Description))
		})
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	product := randomProduct(uuid.New())
	repo := NewMockRepo(ctrl)

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)

	got, err := New(repo).Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, product, got)
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sellerID := uuid.New()
	products := []domain.Product{randomProduct(sellerID), randomProduct(sellerID)}
	arg := domain.ListProductsParams{Limit: 10, Offset: 0}
	repo := NewMockRepo(ctrl)

	repo.EXPECT().List(gomock.Any(), gomock.Eq(arg)).Times(1).Return(products, nil)

	got, err := New(repo).List(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, products, got)
}

func TestUpdate(t *testing.T) {
	owner := uuid.New()
	product := randomProduct(owner)

	cost := int64(75)
	negativeCost := int64(-1)
	tooHighCost := domain.MaxCost + 1
	negativeQuantity := int32(-1)

	updated := product
	updated.Cost = cost

	testCases := []struct {
		name          string
		sellerID      uuid.UUID
		arg           domain.UpdateProductParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Product, err error)
	}{
		{
			name:     "OK",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Cost: &cost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Eq(product.ID), gomock.Eq(domain.UpdateProductParams{Cost: &cost})).
					Times(1).
					Return(updated, nil)
			},
			checkResponse: func(res domain.Product, err error) {
				require.NoError(t, err)
				require.Equal(t, updated, res)
			},
		},
		{
			name:     "ErrAccessDenied",
			sellerID: uuid.New(),
			arg:      domain.UpdateProductParams{Cost: &cost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrAccessDenied)
				require.Empty(t, res)
			},
		},
		{
			name:     "ErrProductNotFound",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Cost: &cost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(domain.Product{}, domain.ErrProductNotFound)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrNotFound)
				require.Empty(t, res)
			},
		},
		{
			name:     "NegativeCost",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Cost: &negativeCost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCost)
			},
		},
		{
			name:     "CostAboveMax",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Cost: &tooHighCost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCost)
			},
		},
		{
			name:     "NegativeQuantity",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Quantity: &negativeQuantity},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidQuantity)
			},
		},
		{
			name:     "RepoErr",
			sellerID: owner,
			arg:      domain.UpdateProductParams{Cost: &cost},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Product{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)
			tc.checkResponse(service.Update(context.Background(), product.ID, tc.sellerID, tc.arg))
		})
	}
}

func TestDelete(t *testing.T) {
	owner := uuid.New()
	product := randomProduct(owner)

	testCases := []struct {
		name          string
		sellerID      uuid.UUID
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Product, err error)
	}{
		{
			name:     "OK",
			sellerID: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
			},
			checkResponse: func(res domain.Product, err error) {
				require.NoError(t, err)
				require.Equal(t, product, res)
			},
		},
		{
			name:     "ErrAccessDenied",
			sellerID: uuid.New(),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(product, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrAccessDenied)
				require.Empty(t, res)
			},
		},
		{
			name:     "ErrProductNotFound",
			sellerID: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(product.ID)).Times(1).Return(domain.Product{}, domain.ErrProductNotFound)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Product, err error) {
				require.ErrorIs(t, err, domain.ErrProductNotFound)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)
			tc.checkResponse(service.Delete(context.Background(), product.ID, tc.sellerID))
		})
	}
}

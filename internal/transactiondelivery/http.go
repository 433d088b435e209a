// Package transactiondelivery manages delivery layer of buyer transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/middleware"
	"github.com/go-petr/pet-vending/pkg/coinpkg"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-petr/pet-vending/pkg/web"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 10

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, buyerID uuid.UUID, coins []int64) (int64, error)
	Buy(ctx context.Context, buyerID uuid.UUID, lines []domain.PurchaseLine) (domain.PurchaseResult, error)
	Reset(ctx context.Context, buyerID uuid.UUID) (domain.User, error)
	ListEntries(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type depositData struct {
	Deposit        int64  `json:"deposit"`
	DepositDisplay string `json:"deposit_display"`
}

type depositRequest struct {
	Coins []int64 `json:"coins" binding:"required,min=1,dive,coin"`
}

// Deposit handles http request to put coins into the buyer deposit.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	buyerID, ok := buyer(gctx)
	if !ok {
		return
	}

	balance, err := h.service.Deposit(ctx, buyerID, req.Coins)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: depositData{
		Deposit:        balance,
		DepositDisplay: coinpkg.Format(balance),
	}})
}

type purchaseLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Amount    int32  `json:"amount" binding:"required,min=1"`
}

type purchaseData struct {
	Purchase domain.PurchaseResult `json:"purchase"`
}

// Buy handles http request to buy products with the buyer deposit.
// The body is a list of product lines.
func (h *Handler) Buy(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req []purchaseLineRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	buyerID, ok := buyer(gctx)
	if !ok {
		return
	}

	lines := make([]domain.PurchaseLine, len(req))
	for i, r := range req {
		lines[i] = domain.PurchaseLine{
			ProductID: uuid.MustParse(r.ProductID),
			Quantity:  r.Amount,
		}
	}

	result, err := h.service.Buy(ctx, buyerID, lines)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: purchaseData{Purchase: result}})
}

type userData struct {
	User domain.UserWithoutPassword `json:"user"`
}

// Reset handles http request to empty the buyer deposit.
func (h *Handler) Reset(gctx *gin.Context) {
	buyerID, ok := buyer(gctx)
	if !ok {
		return
	}

	user, err := h.service.Reset(gctx.Request.Context(), buyerID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: userData{User: domain.NewUserWithoutPassword(user)}})
}

type listEntriesRequest struct {
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int32 `form:"offset" binding:"omitempty,min=0"`
}

type entriesData struct {
	Entries []domain.Entry `json:"entries"`
}

// ListEntries handles http request to list the balance changes of the buyer.
func (h *Handler) ListEntries(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listEntriesRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	buyerID, ok := buyer(gctx)
	if !ok {
		return
	}

	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}

	entries, err := h.service.ListEntries(ctx, domain.ListEntriesParams{
		UserID: buyerID,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entriesData{Entries: entries}})
}

func buyer(gctx *gin.Context) (uuid.UUID, bool) {
	payload, ok := middleware.Payload(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return uuid.Nil, false
	}

	return payload.UserID, true
}

func respondError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidCoin),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyPurchase):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Package productdelivery manages delivery layer of products.
package productdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/middleware"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-petr/pet-vending/pkg/web"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 10

// Service provides service layer interface needed by product delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package productdelivery
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, name string, cost int64, quantity int32, description string) (domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context, arg domain.ListProductsParams) ([]domain.Product, error)
	Update(ctx context.Context, id, sellerID uuid.UUID, arg domain.UpdateProductParams) (domain.Product, error)
	Delete(ctx context.Context, id, sellerID uuid.UUID) (domain.Product, error)
}

// Handler facilitates product delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns product handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

type productData struct {
	Product domain.Product `json:"product"`
}

type productsData struct {
	Products []domain.Product `json:"products"`
}

type createRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Cost        int64  `json:"cost" binding:"min=0,max=100000000"`
	Quantity    int32  `json:"quantity" binding:"min=0"`
	Description string `json:"description" binding:"max=1024"`
}

// Create handles http request to create a product of the authenticated seller.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	payload, ok := middleware.Payload(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	product, err := h.service.Create(ctx, payload.UserID, req.Name, req.Cost, req.Quantity, req.Description)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: productData{Product: product}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func bindID(gctx *gin.Context) (uuid.UUID, bool) {
	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return uuid.Nil, false
	}

	return uuid.MustParse(req.ID), true
}

// Get handles http request to get a product.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	product, err := h.service.Get(gctx.Request.Context(), id)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: productData{Product: product}})
}

type listRequest struct {
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int32 `form:"offset" binding:"omitempty,min=0"`
}

// List handles http request to list products page by page.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}

	products, err := h.service.List(ctx, domain.ListProductsParams{Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: productsData{Products: products}})
}

type updateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Cost        *int64  `json:"cost" binding:"omitempty,min=0,max=100000000"`
	Quantity    *int32  `json:"quantity" binding:"omitempty,min=0"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
}

// Update handles http request to partially update a product of the authenticated seller.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	id, ok := bindID(gctx)
	if !ok {
		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	payload, ok := middleware.Payload(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	arg := domain.UpdateProductParams{
		Name:        req.Name,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		Description: req.Description,
	}

	product, err := h.service.Update(ctx, id, payload.UserID, arg)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: productData{Product: product}})
}

// Delete handles http request to delete a product of the authenticated seller.
func (h *Handler) Delete(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	payload, ok := middleware.Payload(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	product, err := h.service.Delete(gctx.Request.Context(), id, payload.UserID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: productData{Product: product}})
}

func respondError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	switch {
	case errors.Is(err, domain.ErrNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrAccessDenied):
		l.Warn().Err(err).Send()
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrInvalidCost),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientStock):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-petr/pet-vending/pkg/tokenpkg"
	"github.com/go-petr/pet-vending/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error)
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{
		service: ss,
	}
}

type renewAccessTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RenewAccessToken handles http request to renew access token.
func (h *Handler) RenewAccessToken(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req renewAccessTokenRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	accessToken, accessTokenExpiresAt, err := h.service.RenewAccessToken(ctx, req.RefreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(statusCode(err), web.Error(publicError(err)))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessTokenExpiresAt.Format(time.RFC3339),
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tokenpkg.ErrInvalidToken),
		errors.Is(err, tokenpkg.ErrExpiredToken),
		errors.Is(err, domain.ErrBlockedSession),
		errors.Is(err, domain.ErrInvalidUser),
		errors.Is(err, domain.ErrMismatchedRefreshToken),
		errors.Is(err, domain.ErrExpiredSession):
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

func publicError(err error) error {
	if statusCode(err) == http.StatusInternalServerError {
		return errorspkg.ErrInternal
	}

	return err
}

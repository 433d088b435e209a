// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/internal/middleware"
	"github.com/go-petr/pet-vending/internal/productdelivery"
	"github.com/go-petr/pet-vending/internal/productrepo"
	"github.com/go-petr/pet-vending/internal/productservice"
	"github.com/go-petr/pet-vending/internal/sessiondelivery"
	"github.com/go-petr/pet-vending/internal/sessionrepo"
	"github.com/go-petr/pet-vending/internal/sessionservice"
	"github.com/go-petr/pet-vending/internal/transactiondelivery"
	"github.com/go-petr/pet-vending/internal/transactionrepo"
	"github.com/go-petr/pet-vending/internal/transactionservice"
	"github.com/go-petr/pet-vending/internal/userdelivery"
	"github.com/go-petr/pet-vending/internal/userrepo"
	"github.com/go-petr/pet-vending/internal/userservice"
	"github.com/go-petr/pet-vending/pkg/coinpkg"
	"github.com/go-petr/pet-vending/pkg/configpkg"
	"github.com/go-petr/pet-vending/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	productRepo := productrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewMaker(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	userService := userservice.New(userRepo)
	productService := productservice.New(productRepo)
	transactionService := transactionservice.New(transactionRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	productHandler := productdelivery.NewHandler(productService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("coin", coinpkg.ValidCoin); err != nil {
			return nil, fmt.Errorf("cannot register coin validator: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api/v1")

	api.POST("/users", userHandler.Create)
	api.POST("/users/logins", userHandler.Login)
	api.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := api.Group("/", middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/users/me", userHandler.Me)

	authRoutes.GET("/products", productHandler.List)
	authRoutes.GET("/products/:id", productHandler.Get)

	sellerRoutes := authRoutes.Group("/", middleware.RequireRole(domain.RoleSeller))

	sellerRoutes.POST("/products", productHandler.Create)
	sellerRoutes.PATCH("/products/:id", productHandler.Update)
	sellerRoutes.DELETE("/products/:id", productHandler.Delete)

	buyerRoutes := authRoutes.Group("/transactions", middleware.RequireRole(domain.RoleBuyer))

	buyerRoutes.POST("/deposit", transactionHandler.Deposit)
	buyerRoutes.POST("/buy", transactionHandler.Buy)
	buyerRoutes.DELETE("/reset", transactionHandler.Reset)
	buyerRoutes.GET("/entries", transactionHandler.ListEntries)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

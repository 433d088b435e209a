// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-petr/pet-vending/pkg/passpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create registers the user with a zero deposit and returns it.
func (s *Service) Create(ctx context.Context, username, password string, role domain.Role, enabled bool) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	if !role.Valid() {
		return result, domain.ErrInvalidRole
	}

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           role,
		Enabled:        enabled,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	result = domain.NewUserWithoutPassword(gotUser)

	return result, nil
}

// CheckPassword checks if the password is valid for the given username and
// the user may log in.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	if !gotUser.Enabled {
		l.Warn().Str("username", username).Msg("disabled user tried to log in")
		return response, domain.ErrUserDisabled
	}

	response = domain.NewUserWithoutPassword(gotUser)

	return response, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return domain.NewUserWithoutPassword(gotUser), nil
}

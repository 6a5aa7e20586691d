// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	repo     repository.UserRepositoryIface
	validate *validator.Validate
}

func NewUserService(repo repository.UserRepositoryIface) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(),
	}
}

type EnsureUserInput struct {
	Auth0Sub string `json:"auth0_sub" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UserIDForSubject derives the stable account ID for an identity
// subject. The same subject always maps to the same UUID, so
// provisioning is idempotent across logins.
func UserIDForSubject(sub string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(sub))
}

// EnsureUser returns the account for the subject, creating it on first
// sight. Email changes on the identity side are mirrored onto the row.
func (s *UserService) EnsureUser(ctx context.Context, input EnsureUserInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.repo.FindByAuth0Sub(ctx, input.Auth0Sub)
	if err == nil {
		if user.Email != input.Email {
			user.Email = input.Email
			if err := s.repo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	sub := input.Auth0Sub
	user = &model.User{
		ID:       UserIDForSubject(sub),
		Email:    input.Email,
		Auth0Sub: &sub,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetUserByAuth0Sub(ctx context.Context, sub string) (*model.User, error) {
	return s.repo.FindByAuth0Sub(ctx, sub)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

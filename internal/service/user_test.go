package service_test

import (
	"context"
	"testing"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestEnsureUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const sub = "auth0|abc123"

	t.Run("provisions a new account on first sight", func(t *testing.T) {
		repo := mocks.NewMockUserRepositoryIface(ctrl)
		svc := service.NewUserService(repo)

		repo.EXPECT().FindByAuth0Sub(gomock.Any(), sub).Return(nil, domain.ErrUserNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *model.User) error {
				assert.Equal(t, service.UserIDForSubject(sub), user.ID)
				assert.Equal(t, "vol@example.com", user.Email)
				assert.Equal(t, sub, *user.Auth0Sub)
				return nil
			})

		user, err := svc.EnsureUser(context.Background(), service.EnsureUserInput{
			Auth0Sub: sub,
			Email:    "vol@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, service.UserIDForSubject(sub), user.ID)
	})

	t.Run("returns the existing account unchanged", func(t *testing.T) {
		repo := mocks.NewMockUserRepositoryIface(ctrl)
		svc := service.NewUserService(repo)

		existingSub := sub
		existing := &model.User{
			ID:       service.UserIDForSubject(sub),
			Email:    "vol@example.com",
			Auth0Sub: &existingSub,
		}
		repo.EXPECT().FindByAuth0Sub(gomock.Any(), sub).Return(existing, nil)

		user, err := svc.EnsureUser(context.Background(), service.EnsureUserInput{
			Auth0Sub: sub,
			Email:    "vol@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, existing, user)
	})

	t.Run("mirrors an email change onto the account", func(t *testing.T) {
		repo := mocks.NewMockUserRepositoryIface(ctrl)
		svc := service.NewUserService(repo)

		existingSub := sub
		existing := &model.User{
			ID:       service.UserIDForSubject(sub),
			Email:    "old@example.com",
			Auth0Sub: &existingSub,
		}
		repo.EXPECT().FindByAuth0Sub(gomock.Any(), sub).Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *model.User) error {
				assert.Equal(t, "new@example.com", user.Email)
				return nil
			})

		user, err := svc.EnsureUser(context.Background(), service.EnsureUserInput{
			Auth0Sub: sub,
			Email:    "new@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		svc := service.NewUserService(nil)

		_, err := svc.EnsureUser(context.Background(), service.EnsureUserInput{
			Auth0Sub: sub,
			Email:    "not-an-email",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserIDForSubject(t *testing.T) {
	a := service.UserIDForSubject("auth0|abc123")
	b := service.UserIDForSubject("auth0|abc123")
	c := service.UserIDForSubject("auth0|other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository"
)

type fakeAuthUserRepository struct {
	usersByEmail map[string]domain.User
	nextID       uint
}

func newFakeAuthUserRepository() *fakeAuthUserRepository {
	return &fakeAuthUserRepository{
		usersByEmail: make(map[string]domain.User),
		nextID:       1,
	}
}

func (f *fakeAuthUserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := newFakeAuthUserRepository()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "donor@example.com",
		Password: "s3cret-pass",
		Name:     "Donor",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", created.Password, "password is stored hashed")

	user, err := svc.Login(context.Background(), "donor@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newFakeAuthUserRepository()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "donor@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "donor@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login_Failures(t *testing.T) {
	repo := newFakeAuthUserRepository()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "donor@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "donor@example.com", "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}

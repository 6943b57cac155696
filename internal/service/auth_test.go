package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository"
)

type fakeStudioRepo struct {
	byEmail map[string]domain.Studio
	nextID  uint
}

func newFakeStudioRepo() *fakeStudioRepo {
	return &fakeStudioRepo{
		byEmail: map[string]domain.Studio{},
	}
}

func (f *fakeStudioRepo) Create(_ context.Context, studio domain.Studio) (domain.Studio, error) {
	if _, exists := f.byEmail[studio.Email]; exists {
		return domain.Studio{}, repository.ErrStudioEmailExists
	}

	f.nextID++
	studio.ID = f.nextID
	f.byEmail[studio.Email] = studio

	return studio, nil
}

func (f *fakeStudioRepo) FindByEmail(_ context.Context, email string) (domain.Studio, error) {
	studio, ok := f.byEmail[email]
	if !ok {
		return domain.Studio{}, repository.ErrStudioNotFound
	}

	return studio, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := newFakeStudioRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.Studio{
		Email:    "studio@example.com",
		Password: "password1",
		Name:     "Studio One",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	// The stored hash never leaves the service as plain text.
	assert.NotEqual(t, "password1", repo.byEmail["studio@example.com"].Password)

	logged, err := svc.Login(context.Background(), "studio@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeStudioRepo())

	_, err := svc.Signup(context.Background(), domain.Studio{Email: "studio@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.Studio{Email: "studio@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrStudioEmailExists)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc := NewAuthService(newFakeStudioRepo())

	_, err := svc.Signup(context.Background(), domain.Studio{Email: "studio@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "studio@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

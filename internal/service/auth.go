package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository"
)

var (
	ErrStudioEmailExists = repository.ErrStudioEmailExists
	ErrStudioNotFound    = repository.ErrStudioNotFound
	ErrWrongPassword     = errors.New("wrong password")
)

type AuthStudioRepository interface {
	Create(ctx context.Context, studio domain.Studio) (domain.Studio, error)
	FindByEmail(ctx context.Context, email string) (domain.Studio, error)
}

type AuthService struct {
	repo AuthStudioRepository
}

func NewAuthService(repo AuthStudioRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Signup(ctx context.Context, studio domain.Studio) (domain.Studio, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(studio.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Studio{}, err
	}
	studio.Password = string(hash)

	created, err := s.repo.Create(ctx, studio)
	if err != nil {
		if errors.Is(err, repository.ErrStudioEmailExists) {
			return domain.Studio{}, ErrStudioEmailExists
		}

		return domain.Studio{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Studio, error) {
	studio, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStudioNotFound) {
			return domain.Studio{}, ErrStudioNotFound
		}

		return domain.Studio{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(studio.Password), []byte(password)); err != nil {
		return domain.Studio{}, ErrWrongPassword
	}

	return studio, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/dancecash/dancecash-api/internal/domain"
)

type StudioRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Studio, error)
	Update(ctx context.Context, studio domain.Studio) (domain.Studio, error)
}

type StudioService struct {
	repo StudioRepository
}

func NewStudioService(repo StudioRepository) *StudioService {
	return &StudioService{
		repo: repo,
	}
}

func (s *StudioService) GetStudio(ctx context.Context, id uint) (domain.Studio, error) {
	studio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Studio{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return studio, nil
}

// UpdateSettings updates the studio profile, including the payout address
// settled payments are swept to.
func (s *StudioService) UpdateSettings(ctx context.Context, studio domain.Studio) (domain.Studio, error) {
	updated, err := s.repo.Update(ctx, studio)
	if err != nil {
		return domain.Studio{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

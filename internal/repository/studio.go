package repository

import (
	"context"
	"fmt"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository/dao"
)

var (
	ErrStudioEmailExists = dao.ErrStudioEmailExists
	ErrStudioNotFound    = dao.ErrStudioNotFound
)

type StudioDAO interface {
	Insert(ctx context.Context, studio dao.Studio) (dao.Studio, error)
	FindByID(ctx context.Context, id uint) (dao.Studio, error)
	FindByEmail(ctx context.Context, email string) (dao.Studio, error)
	Update(ctx context.Context, studio dao.Studio) (dao.Studio, error)
}

type StudioRepository struct {
	dao StudioDAO
}

func NewStudioRepository(dao StudioDAO) *StudioRepository {
	return &StudioRepository{
		dao: dao,
	}
}

func (r *StudioRepository) Create(ctx context.Context, studio domain.Studio) (domain.Studio, error) {
	created, err := r.dao.Insert(ctx, dao.Studio{
		Email:       studio.Email,
		Password:    studio.Password,
		Name:        studio.Name,
		Description: studio.Description,
		LogoURL:     studio.LogoURL,
		BCHAddress:  studio.BCHAddress,
	})
	if err != nil {
		return domain.Studio{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StudioRepository) FindByID(ctx context.Context, id uint) (domain.Studio, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Studio{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudioRepository) FindByEmail(ctx context.Context, email string) (domain.Studio, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Studio{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudioRepository) Update(ctx context.Context, studio domain.Studio) (domain.Studio, error) {
	updated, err := r.dao.Update(ctx, dao.Studio{
		ID:          studio.ID,
		Name:        studio.Name,
		Description: studio.Description,
		LogoURL:     studio.LogoURL,
		BCHAddress:  studio.BCHAddress,
	})
	if err != nil {
		return domain.Studio{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StudioRepository) daoToDomain(s dao.Studio) domain.Studio {
	return domain.Studio{
		ID:          s.ID,
		Email:       s.Email,
		Password:    s.Password,
		Name:        s.Name,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		BCHAddress:  s.BCHAddress,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

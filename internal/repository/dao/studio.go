package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrStudioEmailExists = errors.New("studio already exists")
	ErrStudioNotFound    = errors.New("studio not found")
)

type Studio struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name        string `gorm:"not null"`
	Description string
	LogoURL     string
	BCHAddress  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudioDAO struct {
	db *gorm.DB
}

func NewStudioDAO(db *gorm.DB) *StudioDAO {
	return &StudioDAO{
		db: db,
	}
}

func (d *StudioDAO) Insert(ctx context.Context, studio Studio) (Studio, error) {
	result := d.db.WithContext(ctx).Create(&studio)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_studios_email"`) {
			return Studio{}, ErrStudioEmailExists
		}

		return Studio{}, result.Error
	}

	return studio, nil
}

func (d *StudioDAO) FindByID(ctx context.Context, id uint) (Studio, error) {
	var studio Studio

	result := d.db.WithContext(ctx).First(&studio, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Studio{}, ErrStudioNotFound
		}

		return Studio{}, result.Error
	}

	return studio, nil
}

func (d *StudioDAO) FindByEmail(ctx context.Context, email string) (Studio, error) {
	var studio Studio

	result := d.db.WithContext(ctx).First(&studio, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Studio{}, ErrStudioNotFound
		}

		return Studio{}, result.Error
	}

	return studio, nil
}

func (d *StudioDAO) Update(ctx context.Context, studio Studio) (Studio, error) {
	result := d.db.WithContext(ctx).Model(&Studio{ID: studio.ID}).Updates(map[string]interface{}{
		"name":        studio.Name,
		"description": studio.Description,
		"logo_url":    studio.LogoURL,
		"bch_address": studio.BCHAddress,
	})
	if result.Error != nil {
		return Studio{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Studio{}, ErrStudioNotFound
	}

	return d.FindByID(ctx, studio.ID)
}

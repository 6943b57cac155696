package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSignupNotFound     = errors.New("signup not found")
	ErrSignupNotClaimable = errors.New("signup is not in a claimable state")
)

type Signup struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	EventID uint   `gorm:"not null;index"`

	AttendeeName  string `gorm:"not null"`
	AttendeeEmail string
	AttendeePhone string

	Status        string `gorm:"not null;default:pending;index"`
	PaymentMethod string
	PricePaidUSD  float64
	PricePaidBCH  float64
	TransactionID string
	NFTTxID       string
	MintError     string
	EventName     string
	CashStampID   string
	ConfirmedAt   *time.Time

	Event *Event `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Payment struct {
	ID       uint   `gorm:"primaryKey"`
	SignupID string `gorm:"not null;index;type:uuid"`

	Amount   float64 `gorm:"not null"`
	Currency string  `gorm:"not null"`
	Status   string  `gorm:"not null"`
	TxHash   string

	CreatedAt time.Time `gorm:"not null"`
}

type SignupDAO struct {
	db *gorm.DB
}

func NewSignupDAO(db *gorm.DB) *SignupDAO {
	return &SignupDAO{
		db: db,
	}
}

func (d *SignupDAO) Insert(ctx context.Context, signup Signup) (Signup, error) {
	result := d.db.WithContext(ctx).Create(&signup)
	if result.Error != nil {
		return Signup{}, result.Error
	}

	return signup, nil
}

func (d *SignupDAO) FindByID(ctx context.Context, id string) (Signup, error) {
	var signup Signup

	result := d.db.WithContext(ctx).Preload("Event").First(&signup, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Signup{}, ErrSignupNotFound
		}

		return Signup{}, result.Error
	}

	return signup, nil
}

// CountActiveByEventID counts signups that still hold (or may hold) a spot.
func (d *SignupDAO) CountActiveByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Signup{}).
		Where("event_id = ? AND status <> ?", eventID, "failed").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Claim moves a signup from "pending" to "confirming" only if no other
// caller has done so first. RowsAffected == 0 means the signup was already
// claimed, settled, or does not exist, and the caller must not run
// settlement side effects.
func (d *SignupDAO) Claim(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Model(&Signup{}).
		Where("id = ? AND status = ?", id, "pending").
		Update("status", "confirming")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSignupNotClaimable
	}

	return nil
}

func (d *SignupDAO) UpdateStatus(ctx context.Context, id, status string) error {
	result := d.db.WithContext(ctx).Model(&Signup{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSignupNotFound
	}

	return nil
}

func (d *SignupDAO) RecordConfirmation(ctx context.Context, id string, fields map[string]interface{}) error {
	result := d.db.WithContext(ctx).Model(&Signup{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSignupNotFound
	}

	return nil
}

func (d *SignupDAO) InsertPayment(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

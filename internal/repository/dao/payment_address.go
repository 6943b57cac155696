package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPaymentAddressNotFound = errors.New("payment address not found")
	ErrCashStampNotFound      = errors.New("cashstamp not found")
)

type PaymentAddress struct {
	ID       uint   `gorm:"primaryKey"`
	SignupID string `gorm:"not null;uniqueIndex;type:uuid"`

	Address         string  `gorm:"not null;uniqueIndex"`
	DerivationIndex uint32  `gorm:"not null"`
	AmountBCH       float64 `gorm:"not null"`
	Status          string  `gorm:"not null;default:awaiting_payment"`
	ExpiresAt       time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CashStamp struct {
	ID       string `gorm:"primaryKey"`
	SignupID string `gorm:"not null;index;type:uuid"`

	QRCodeData string  `gorm:"not null"`
	AmountBCH  float64 `gorm:"not null"`
	Claimed    bool    `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type PaymentAddressDAO struct {
	db *gorm.DB
}

func NewPaymentAddressDAO(db *gorm.DB) *PaymentAddressDAO {
	return &PaymentAddressDAO{
		db: db,
	}
}

// InsertWithNextIndex assigns the next child-key derivation index. Two
// concurrent issuers can read the same MAX(derivation_index); the unique
// index on address turns the loser's insert into a unique violation, and
// the insert is retried with a fresh index.
func (d *PaymentAddressDAO) InsertWithNextIndex(ctx context.Context, addr PaymentAddress, derive func(index uint32) (string, error)) (PaymentAddress, error) {
	const maxAttempts = 3

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxIndex int64
			row := tx.Model(&PaymentAddress{}).
				Select("COALESCE(MAX(derivation_index), 0)").
				Row()
			if scanErr := row.Scan(&maxIndex); scanErr != nil {
				return scanErr
			}

			addr.DerivationIndex = uint32(maxIndex) + 1

			derived, deriveErr := derive(addr.DerivationIndex)
			if deriveErr != nil {
				return deriveErr
			}
			addr.Address = derived

			return tx.Create(&addr).Error
		})
		if err == nil {
			return addr, nil
		}
		if !isUniqueViolation(err) {
			return PaymentAddress{}, err
		}
	}

	return PaymentAddress{}, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (d *PaymentAddressDAO) FindBySignupID(ctx context.Context, signupID string) (PaymentAddress, error) {
	var addr PaymentAddress

	result := d.db.WithContext(ctx).First(&addr, "signup_id = ?", signupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PaymentAddress{}, ErrPaymentAddressNotFound
		}

		return PaymentAddress{}, result.Error
	}

	return addr, nil
}

func (d *PaymentAddressDAO) FindByAddressAndSignupID(ctx context.Context, address, signupID string) (PaymentAddress, error) {
	var addr PaymentAddress

	result := d.db.WithContext(ctx).First(&addr, "address = ? AND signup_id = ?", address, signupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PaymentAddress{}, ErrPaymentAddressNotFound
		}

		return PaymentAddress{}, result.Error
	}

	return addr, nil
}

func (d *PaymentAddressDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&PaymentAddress{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentAddressNotFound
	}

	return nil
}

func (d *PaymentAddressDAO) InsertCashStamp(ctx context.Context, stamp CashStamp) (CashStamp, error) {
	result := d.db.WithContext(ctx).Create(&stamp)
	if result.Error != nil {
		return CashStamp{}, result.Error
	}

	return stamp, nil
}

func (d *PaymentAddressDAO) FindCashStampBySignupID(ctx context.Context, signupID string) (CashStamp, error) {
	var stamp CashStamp

	result := d.db.WithContext(ctx).First(&stamp, "signup_id = ?", signupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CashStamp{}, ErrCashStampNotFound
		}

		return CashStamp{}, result.Error
	}

	return stamp, nil
}

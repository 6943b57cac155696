package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository/dao"
)

var (
	ErrSignupNotFound     = dao.ErrSignupNotFound
	ErrSignupNotClaimable = dao.ErrSignupNotClaimable
)

type SignupDAO interface {
	Insert(ctx context.Context, signup dao.Signup) (dao.Signup, error)
	FindByID(ctx context.Context, id string) (dao.Signup, error)
	CountActiveByEventID(ctx context.Context, eventID uint) (int64, error)
	Claim(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	RecordConfirmation(ctx context.Context, id string, fields map[string]interface{}) error
	InsertPayment(ctx context.Context, payment dao.Payment) (dao.Payment, error)
}

type SignupRepository struct {
	dao SignupDAO
}

func NewSignupRepository(dao SignupDAO) *SignupRepository {
	return &SignupRepository{
		dao: dao,
	}
}

func (r *SignupRepository) Create(ctx context.Context, signup domain.Signup) (domain.Signup, error) {
	created, err := r.dao.Insert(ctx, dao.Signup{
		ID:            signup.ID,
		EventID:       signup.EventID,
		AttendeeName:  signup.AttendeeName,
		AttendeeEmail: signup.AttendeeEmail,
		AttendeePhone: signup.AttendeePhone,
		Status:        signup.Status,
		PaymentMethod: signup.PaymentMethod,
		EventName:     signup.EventName,
	})
	if err != nil {
		return domain.Signup{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SignupRepository) FindByID(ctx context.Context, id string) (domain.Signup, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Signup{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SignupRepository) CountActiveByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountActiveByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActiveByEventID -> %w", err)
	}

	return count, nil
}

func (r *SignupRepository) Claim(ctx context.Context, id string) error {
	if err := r.dao.Claim(ctx, id); err != nil {
		if err == dao.ErrSignupNotClaimable {
			return ErrSignupNotClaimable
		}

		return fmt.Errorf("r.dao.Claim -> %w", err)
	}

	return nil
}

func (r *SignupRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *SignupRepository) RecordConfirmation(ctx context.Context, id string, method string, paidUSD, paidBCH float64, eventName string, confirmedAt time.Time) error {
	err := r.dao.RecordConfirmation(ctx, id, map[string]interface{}{
		"payment_method": method,
		"price_paid_usd": paidUSD,
		"price_paid_bch": paidBCH,
		"event_name":     eventName,
		"confirmed_at":   confirmedAt,
	})
	if err != nil {
		return fmt.Errorf("r.dao.RecordConfirmation -> %w", err)
	}

	return nil
}

func (r *SignupRepository) RecordMint(ctx context.Context, id, txID string) error {
	err := r.dao.RecordConfirmation(ctx, id, map[string]interface{}{
		"nft_txid":       txID,
		"transaction_id": txID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.RecordConfirmation -> %w", err)
	}

	return nil
}

// RecordMintError keeps the failure in its own column so "mint failed" can
// never be mistaken for "no ticket yet" or clobber a real txid.
func (r *SignupRepository) RecordMintError(ctx context.Context, id, mintErr string) error {
	err := r.dao.RecordConfirmation(ctx, id, map[string]interface{}{
		"mint_error": mintErr,
	})
	if err != nil {
		return fmt.Errorf("r.dao.RecordConfirmation -> %w", err)
	}

	return nil
}

func (r *SignupRepository) RecordCashStampID(ctx context.Context, id, cashStampID string) error {
	err := r.dao.RecordConfirmation(ctx, id, map[string]interface{}{
		"cash_stamp_id": cashStampID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.RecordConfirmation -> %w", err)
	}

	return nil
}

func (r *SignupRepository) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.InsertPayment(ctx, dao.Payment{
		SignupID: payment.SignupID,
		Amount:   payment.Amount,
		Currency: payment.Currency,
		Status:   payment.Status,
		TxHash:   payment.TxHash,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.InsertPayment -> %w", err)
	}

	return domain.Payment{
		ID:        created.ID,
		SignupID:  created.SignupID,
		Amount:    created.Amount,
		Currency:  created.Currency,
		Status:    created.Status,
		TxHash:    created.TxHash,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (r *SignupRepository) daoToDomain(s dao.Signup) domain.Signup {
	signup := domain.Signup{
		ID:            s.ID,
		EventID:       s.EventID,
		AttendeeName:  s.AttendeeName,
		AttendeeEmail: s.AttendeeEmail,
		AttendeePhone: s.AttendeePhone,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		PricePaidUSD:  s.PricePaidUSD,
		PricePaidBCH:  s.PricePaidBCH,
		TransactionID: s.TransactionID,
		NFTTxID:       s.NFTTxID,
		MintError:     s.MintError,
		EventName:     s.EventName,
		CashStampID:   s.CashStampID,
		ConfirmedAt:   s.ConfirmedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	if s.Event != nil {
		signup.Event = &domain.Event{
			ID:        s.Event.ID,
			StudioID:  s.Event.StudioID,
			Name:      s.Event.Name,
			Date:      s.Event.Date,
			StartTime: s.Event.StartTime,
			EndTime:   s.Event.EndTime,
			Location:  s.Event.Location,
			PriceUSD:  s.Event.PriceUSD,
			Capacity:  s.Event.Capacity,
			BannerURL: s.Event.BannerURL,
		}
	}

	return signup
}

package repository

import (
	"context"
	"fmt"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository/dao"
)

var (
	ErrPaymentAddressNotFound = dao.ErrPaymentAddressNotFound
	ErrCashStampNotFound      = dao.ErrCashStampNotFound
)

type PaymentAddressDAO interface {
	InsertWithNextIndex(ctx context.Context, addr dao.PaymentAddress, derive func(index uint32) (string, error)) (dao.PaymentAddress, error)
	FindBySignupID(ctx context.Context, signupID string) (dao.PaymentAddress, error)
	FindByAddressAndSignupID(ctx context.Context, address, signupID string) (dao.PaymentAddress, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	InsertCashStamp(ctx context.Context, stamp dao.CashStamp) (dao.CashStamp, error)
	FindCashStampBySignupID(ctx context.Context, signupID string) (dao.CashStamp, error)
}

type PaymentAddressRepository struct {
	dao PaymentAddressDAO
}

func NewPaymentAddressRepository(dao PaymentAddressDAO) *PaymentAddressRepository {
	return &PaymentAddressRepository{
		dao: dao,
	}
}

func (r *PaymentAddressRepository) Create(ctx context.Context, addr domain.PaymentAddress, derive func(index uint32) (string, error)) (domain.PaymentAddress, error) {
	created, err := r.dao.InsertWithNextIndex(ctx, dao.PaymentAddress{
		SignupID:  addr.SignupID,
		AmountBCH: addr.AmountBCH,
		Status:    addr.Status,
		ExpiresAt: addr.ExpiresAt,
	}, derive)
	if err != nil {
		return domain.PaymentAddress{}, fmt.Errorf("r.dao.InsertWithNextIndex -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentAddressRepository) FindBySignupID(ctx context.Context, signupID string) (domain.PaymentAddress, error) {
	found, err := r.dao.FindBySignupID(ctx, signupID)
	if err != nil {
		return domain.PaymentAddress{}, fmt.Errorf("r.dao.FindBySignupID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PaymentAddressRepository) FindByAddressAndSignupID(ctx context.Context, address, signupID string) (domain.PaymentAddress, error) {
	found, err := r.dao.FindByAddressAndSignupID(ctx, address, signupID)
	if err != nil {
		return domain.PaymentAddress{}, fmt.Errorf("r.dao.FindByAddressAndSignupID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PaymentAddressRepository) MarkPaid(ctx context.Context, id uint) error {
	if err := r.dao.UpdateStatus(ctx, id, domain.AddressStatusPaid); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *PaymentAddressRepository) CreateCashStamp(ctx context.Context, stamp domain.CashStamp) (domain.CashStamp, error) {
	created, err := r.dao.InsertCashStamp(ctx, dao.CashStamp{
		ID:         stamp.ID,
		SignupID:   stamp.SignupID,
		QRCodeData: stamp.QRCodeData,
		AmountBCH:  stamp.AmountBCH,
		Claimed:    stamp.Claimed,
	})
	if err != nil {
		return domain.CashStamp{}, fmt.Errorf("r.dao.InsertCashStamp -> %w", err)
	}

	return r.cashStampDAOToDomain(created), nil
}

func (r *PaymentAddressRepository) FindCashStampBySignupID(ctx context.Context, signupID string) (domain.CashStamp, error) {
	found, err := r.dao.FindCashStampBySignupID(ctx, signupID)
	if err != nil {
		return domain.CashStamp{}, fmt.Errorf("r.dao.FindCashStampBySignupID -> %w", err)
	}

	return r.cashStampDAOToDomain(found), nil
}

func (r *PaymentAddressRepository) daoToDomain(a dao.PaymentAddress) domain.PaymentAddress {
	return domain.PaymentAddress{
		ID:              a.ID,
		SignupID:        a.SignupID,
		Address:         a.Address,
		DerivationIndex: a.DerivationIndex,
		AmountBCH:       a.AmountBCH,
		Status:          a.Status,
		ExpiresAt:       a.ExpiresAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *PaymentAddressRepository) cashStampDAOToDomain(s dao.CashStamp) domain.CashStamp {
	return domain.CashStamp{
		ID:         s.ID,
		SignupID:   s.SignupID,
		QRCodeData: s.QRCodeData,
		AmountBCH:  s.AmountBCH,
		Claimed:    s.Claimed,
		CreatedAt:  s.CreatedAt,
	}
}

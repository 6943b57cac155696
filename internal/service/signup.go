package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/pkg/ticketpdf"
	"github.com/dancecash/dancecash-api/internal/repository"
)

var (
	ErrSignupNotFound    = repository.ErrSignupNotFound
	ErrEventFull         = errors.New("event is at capacity")
	ErrSignupNotSettled  = errors.New("signup is not confirmed yet")
	ErrCashStampNotFound = repository.ErrCashStampNotFound
)

type SignupRepository interface {
	Create(ctx context.Context, signup domain.Signup) (domain.Signup, error)
	FindByID(ctx context.Context, id string) (domain.Signup, error)
	CountActiveByEventID(ctx context.Context, eventID uint) (int64, error)
	RecordConfirmation(ctx context.Context, id string, method string, paidUSD, paidBCH float64, eventName string, confirmedAt time.Time) error
	UpdateStatus(ctx context.Context, id, status string) error
	CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
}

type SignupEventReader interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type CashStampReader interface {
	FindCashStampBySignupID(ctx context.Context, signupID string) (domain.CashStamp, error)
}

type SignupService struct {
	repo      SignupRepository
	eventRepo SignupEventReader
	stamps    CashStampReader
}

func NewSignupService(repo SignupRepository, eventRepo SignupEventReader, stamps CashStampReader) *SignupService {
	return &SignupService{
		repo:      repo,
		eventRepo: eventRepo,
		stamps:    stamps,
	}
}

// CreateSignup inserts a pending signup for an event, refusing once the
// event is at capacity.
func (s *SignupService) CreateSignup(ctx context.Context, signup domain.Signup) (domain.Signup, error) {
	event, err := s.eventRepo.FindByID(ctx, signup.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Signup{}, ErrEventNotFound
		}

		return domain.Signup{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if event.Capacity > 0 {
		taken, err := s.repo.CountActiveByEventID(ctx, event.ID)
		if err != nil {
			return domain.Signup{}, fmt.Errorf("s.repo.CountActiveByEventID -> %w", err)
		}
		if taken >= int64(event.Capacity) {
			return domain.Signup{}, ErrEventFull
		}
	}

	signup.ID = uuid.NewString()
	signup.Status = domain.SignupStatusPending
	signup.EventName = event.Name

	created, err := s.repo.Create(ctx, signup)
	if err != nil {
		return domain.Signup{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SignupService) GetSignup(ctx context.Context, id string) (domain.Signup, error) {
	signup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSignupNotFound) {
			return domain.Signup{}, ErrSignupNotFound
		}

		return domain.Signup{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return signup, nil
}

// Checkout is the door-payment path: the signup is confirmed immediately
// and a payment record is written, with no on-chain settlement.
func (s *SignupService) Checkout(ctx context.Context, signup domain.Signup, amount float64, currency string) (domain.Signup, error) {
	created, err := s.CreateSignup(ctx, signup)
	if err != nil {
		return domain.Signup{}, err
	}

	now := time.Now()
	err = s.repo.RecordConfirmation(ctx, created.ID, domain.PaymentMethodDoor, amount, 0, created.EventName, now)
	if err != nil {
		return domain.Signup{}, fmt.Errorf("s.repo.RecordConfirmation -> %w", err)
	}
	if err = s.repo.UpdateStatus(ctx, created.ID, domain.SignupStatusConfirmed); err != nil {
		return domain.Signup{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	// A failed payment record does not roll the signup back; it is logged
	// and reconciled manually.
	_, err = s.repo.CreatePayment(ctx, domain.Payment{
		SignupID: created.ID,
		Amount:   amount,
		Currency: currency,
		Status:   "completed",
	})
	if err != nil {
		zap.L().Error("failed to write checkout payment record",
			zap.String("signup_id", created.ID), zap.Error(err))
	}

	return s.GetSignup(ctx, created.ID)
}

// TicketPDF renders the printable ticket for a confirmed signup.
func (s *SignupService) TicketPDF(ctx context.Context, id string) ([]byte, error) {
	signup, err := s.GetSignup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !signup.IsSettled() {
		return nil, ErrSignupNotSettled
	}

	ticket := ticketpdf.Ticket{
		EventName:    signup.EventName,
		AttendeeName: signup.AttendeeName,
		TicketID:     signup.ID,
	}
	if signup.Event != nil {
		ticket.EventDate = signup.Event.Date.Format("Monday, January 2, 2006")
		ticket.EventTime = signup.Event.StartTime
		ticket.EventLocation = signup.Event.Location
	}

	pdf, err := ticketpdf.Render(ticket)
	if err != nil {
		return nil, fmt.Errorf("ticketpdf.Render -> %w", err)
	}

	return pdf, nil
}

func (s *SignupService) GetCashStamp(ctx context.Context, signupID string) (domain.CashStamp, error) {
	stamp, err := s.stamps.FindCashStampBySignupID(ctx, signupID)
	if err != nil {
		if errors.Is(err, repository.ErrCashStampNotFound) {
			return domain.CashStamp{}, ErrCashStampNotFound
		}

		return domain.CashStamp{}, fmt.Errorf("s.stamps.FindCashStampBySignupID -> %w", err)
	}

	return stamp, nil
}

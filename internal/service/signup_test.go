package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/repository"
)

type fakeSignupStore struct {
	signups  map[string]*domain.Signup
	payments []domain.Payment
	active   int64

	paymentErr error
}

func newFakeSignupStore() *fakeSignupStore {
	return &fakeSignupStore{
		signups: map[string]*domain.Signup{},
	}
}

func (f *fakeSignupStore) Create(_ context.Context, signup domain.Signup) (domain.Signup, error) {
	stored := signup
	f.signups[signup.ID] = &stored
	f.active++

	return signup, nil
}

func (f *fakeSignupStore) FindByID(_ context.Context, id string) (domain.Signup, error) {
	s, ok := f.signups[id]
	if !ok {
		return domain.Signup{}, repository.ErrSignupNotFound
	}

	return *s, nil
}

func (f *fakeSignupStore) CountActiveByEventID(_ context.Context, _ uint) (int64, error) {
	return f.active, nil
}

func (f *fakeSignupStore) RecordConfirmation(_ context.Context, id, method string, paidUSD, paidBCH float64, eventName string, confirmedAt time.Time) error {
	s := f.signups[id]
	s.PaymentMethod = method
	s.PricePaidUSD = paidUSD
	s.PricePaidBCH = paidBCH
	s.EventName = eventName
	s.ConfirmedAt = &confirmedAt

	return nil
}

func (f *fakeSignupStore) UpdateStatus(_ context.Context, id, status string) error {
	f.signups[id].Status = status
	return nil
}

func (f *fakeSignupStore) CreatePayment(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	if f.paymentErr != nil {
		return domain.Payment{}, f.paymentErr
	}

	f.payments = append(f.payments, payment)

	return payment, nil
}

type fakeStampReader struct {
	stamps map[string]domain.CashStamp
}

func (f *fakeStampReader) FindCashStampBySignupID(_ context.Context, signupID string) (domain.CashStamp, error) {
	stamp, ok := f.stamps[signupID]
	if !ok {
		return domain.CashStamp{}, repository.ErrCashStampNotFound
	}

	return stamp, nil
}

func newSignupFixture(capacity int) (*SignupService, *fakeSignupStore) {
	store := newFakeSignupStore()
	events := &fakeEventReader{events: map[uint]domain.Event{
		1: {
			ID:       1,
			StudioID: 7,
			Name:     "Salsa Social",
			Location: "Main Hall",
			PriceUSD: 15,
			Capacity: capacity,
		},
	}}
	stamps := &fakeStampReader{stamps: map[string]domain.CashStamp{}}

	return NewSignupService(store, events, stamps), store
}

func TestSignupService_CreateSignup(t *testing.T) {
	t.Run("creates a pending signup", func(t *testing.T) {
		svc, _ := newSignupFixture(10)

		created, err := svc.CreateSignup(context.Background(), domain.Signup{
			EventID:      1,
			AttendeeName: "Alex",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.SignupStatusPending, created.Status)
		assert.Equal(t, "Salsa Social", created.EventName)
	})

	t.Run("refuses signups beyond capacity", func(t *testing.T) {
		svc, _ := newSignupFixture(2)

		for i := 0; i < 2; i++ {
			_, err := svc.CreateSignup(context.Background(), domain.Signup{
				EventID:      1,
				AttendeeName: "Alex",
			})
			require.NoError(t, err)
		}

		_, err := svc.CreateSignup(context.Background(), domain.Signup{
			EventID:      1,
			AttendeeName: "Late Larry",
		})
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("ignores capacity when it is zero", func(t *testing.T) {
		svc, store := newSignupFixture(0)
		store.active = 100

		_, err := svc.CreateSignup(context.Background(), domain.Signup{
			EventID:      1,
			AttendeeName: "Alex",
		})
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown event", func(t *testing.T) {
		svc, _ := newSignupFixture(10)

		_, err := svc.CreateSignup(context.Background(), domain.Signup{
			EventID:      42,
			AttendeeName: "Alex",
		})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestSignupService_Checkout(t *testing.T) {
	svc, store := newSignupFixture(10)

	signup, err := svc.Checkout(context.Background(), domain.Signup{
		EventID:      1,
		AttendeeName: "Alex",
	}, 15, "USD")

	require.NoError(t, err)
	assert.Equal(t, domain.SignupStatusConfirmed, signup.Status)
	assert.Equal(t, domain.PaymentMethodDoor, signup.PaymentMethod)
	assert.Equal(t, 15.0, signup.PricePaidUSD)
	require.NotNil(t, signup.ConfirmedAt)

	require.Len(t, store.payments, 1)
	assert.Equal(t, "USD", store.payments[0].Currency)
	assert.Equal(t, "completed", store.payments[0].Status)
}

func TestSignupService_Checkout_PaymentRecordFailure(t *testing.T) {
	svc, store := newSignupFixture(10)
	store.paymentErr = errors.New("payments table unavailable")

	signup, err := svc.Checkout(context.Background(), domain.Signup{
		EventID:      1,
		AttendeeName: "Alex",
	}, 15, "USD")

	// The signup is already confirmed when the payment record is written;
	// a failed record must not turn the checkout into an error.
	require.NoError(t, err)
	assert.Equal(t, domain.SignupStatusConfirmed, signup.Status)
	assert.Equal(t, domain.SignupStatusConfirmed, store.signups[signup.ID].Status)
	assert.Empty(t, store.payments)
}

func TestSignupService_TicketPDF(t *testing.T) {
	t.Run("refuses an unsettled signup", func(t *testing.T) {
		svc, _ := newSignupFixture(10)

		created, err := svc.CreateSignup(context.Background(), domain.Signup{
			EventID:      1,
			AttendeeName: "Alex",
		})
		require.NoError(t, err)

		_, err = svc.TicketPDF(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrSignupNotSettled)
	})

	t.Run("renders a pdf for a confirmed signup", func(t *testing.T) {
		svc, _ := newSignupFixture(10)

		signup, err := svc.Checkout(context.Background(), domain.Signup{
			EventID:      1,
			AttendeeName: "Alex",
		}, 15, "USD")
		require.NoError(t, err)

		pdf, err := svc.TicketPDF(context.Background(), signup.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	})
}

func TestSignupService_GetCashStamp(t *testing.T) {
	svc, _ := newSignupFixture(10)

	_, err := svc.GetCashStamp(context.Background(), "no-such-signup")
	assert.ErrorIs(t, err, ErrCashStampNotFound)
}

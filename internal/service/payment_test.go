package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancecash/dancecash-api/internal/config"
	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/email"
	"github.com/dancecash/dancecash-api/internal/repository"
)

type fakeAddressRepo struct {
	addresses map[string]domain.PaymentAddress
	stamps    []domain.CashStamp
	marked    []uint
	nextIndex uint32
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{
		addresses: map[string]domain.PaymentAddress{},
	}
}

func (f *fakeAddressRepo) Create(_ context.Context, addr domain.PaymentAddress, derive func(index uint32) (string, error)) (domain.PaymentAddress, error) {
	f.nextIndex++

	derived, err := derive(f.nextIndex)
	if err != nil {
		return domain.PaymentAddress{}, err
	}

	addr.ID = uint(f.nextIndex)
	addr.Address = derived
	addr.DerivationIndex = f.nextIndex
	f.addresses[addr.SignupID] = addr

	return addr, nil
}

func (f *fakeAddressRepo) FindBySignupID(_ context.Context, signupID string) (domain.PaymentAddress, error) {
	addr, ok := f.addresses[signupID]
	if !ok {
		return domain.PaymentAddress{}, repository.ErrPaymentAddressNotFound
	}

	return addr, nil
}

func (f *fakeAddressRepo) FindByAddressAndSignupID(_ context.Context, address, signupID string) (domain.PaymentAddress, error) {
	addr, ok := f.addresses[signupID]
	if !ok || addr.Address != address {
		return domain.PaymentAddress{}, repository.ErrPaymentAddressNotFound
	}

	return addr, nil
}

func (f *fakeAddressRepo) MarkPaid(_ context.Context, id uint) error {
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeAddressRepo) CreateCashStamp(_ context.Context, stamp domain.CashStamp) (domain.CashStamp, error) {
	f.stamps = append(f.stamps, stamp)
	return stamp, nil
}

type fakeSignupRepo struct {
	signups map[string]*domain.Signup

	confirmationErr error
	claims          int
}

func newFakeSignupRepo(signups ...*domain.Signup) *fakeSignupRepo {
	f := &fakeSignupRepo{
		signups: map[string]*domain.Signup{},
	}
	for _, s := range signups {
		f.signups[s.ID] = s
	}

	return f
}

func (f *fakeSignupRepo) FindByID(_ context.Context, id string) (domain.Signup, error) {
	s, ok := f.signups[id]
	if !ok {
		return domain.Signup{}, repository.ErrSignupNotFound
	}

	return *s, nil
}

func (f *fakeSignupRepo) Claim(_ context.Context, id string) error {
	s, ok := f.signups[id]
	if !ok || s.Status != domain.SignupStatusPending {
		return repository.ErrSignupNotClaimable
	}

	f.claims++
	s.Status = domain.SignupStatusConfirming

	return nil
}

func (f *fakeSignupRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.signups[id].Status = status
	return nil
}

func (f *fakeSignupRepo) RecordConfirmation(_ context.Context, id, method string, paidUSD, paidBCH float64, eventName string, confirmedAt time.Time) error {
	if f.confirmationErr != nil {
		return f.confirmationErr
	}

	s := f.signups[id]
	s.PaymentMethod = method
	s.PricePaidUSD = paidUSD
	s.PricePaidBCH = paidBCH
	s.EventName = eventName
	s.ConfirmedAt = &confirmedAt

	return nil
}

func (f *fakeSignupRepo) RecordMint(_ context.Context, id, txID string) error {
	f.signups[id].NFTTxID = txID
	return nil
}

func (f *fakeSignupRepo) RecordMintError(_ context.Context, id, mintErr string) error {
	f.signups[id].MintError = mintErr
	return nil
}

func (f *fakeSignupRepo) RecordCashStampID(_ context.Context, id, cashStampID string) error {
	f.signups[id].CashStampID = cashStampID
	return nil
}

type fakeEventReader struct {
	events map[uint]domain.Event
}

func (f *fakeEventReader) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type fakeStudioReader struct {
	studios map[uint]domain.Studio
}

func (f *fakeStudioReader) FindByID(_ context.Context, id uint) (domain.Studio, error) {
	studio, ok := f.studios[id]
	if !ok {
		return domain.Studio{}, repository.ErrStudioNotFound
	}

	return studio, nil
}

type fakeWallet struct {
	balances map[string]float64

	mintErr     error
	sweepErr    error
	mints       int
	sweeps      int
	sweptTo     string
	commitments []string
}

func (f *fakeWallet) Balance(_ context.Context, address string) (float64, error) {
	return f.balances[address], nil
}

func (f *fakeWallet) MintTicket(_ context.Context, _, _, commitment string) (string, error) {
	if f.mintErr != nil {
		return "", f.mintErr
	}

	f.mints++
	f.commitments = append(f.commitments, commitment)

	return "minttx123", nil
}

func (f *fakeWallet) Sweep(_ context.Context, _, payoutAddress string) (string, error) {
	if f.sweepErr != nil {
		return "", f.sweepErr
	}

	f.sweeps++
	f.sweptTo = payoutAddress

	return "sweeptx456", nil
}

type fakeKeys struct{}

func (fakeKeys) Address(index uint32) (string, error) {
	return fmt.Sprintf("bchtest:qaddr%v", index), nil
}

func (fakeKeys) WIF(index uint32) (string, error) {
	return fmt.Sprintf("cWIF%v", index), nil
}

type fakeMailer struct {
	sent []email.Confirmation
}

func (f *fakeMailer) SendConfirmation(_ context.Context, c email.Confirmation) error {
	f.sent = append(f.sent, c)
	return nil
}

type fixedRate struct {
	rate Rate
}

func (f fixedRate) CurrentRate(_ context.Context) Rate {
	return f.rate
}

type paymentFixture struct {
	svc     *PaymentService
	addrs   *fakeAddressRepo
	signups *fakeSignupRepo
	wallet  *fakeWallet
	mailer  *fakeMailer
}

func newPaymentFixture(t *testing.T, signup *domain.Signup) *paymentFixture {
	t.Helper()

	conf := &config.BCHConfig{
		Network:         "chipnet",
		DiscountPercent: 10,
		CashbackPercent: 5,
	}

	addrs := newFakeAddressRepo()
	signups := newFakeSignupRepo(signup)
	events := &fakeEventReader{events: map[uint]domain.Event{
		1: {
			ID:        1,
			StudioID:  7,
			Name:      "Bachata Night",
			Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			StartTime: "20:00",
			Location:  "Studio One",
			PriceUSD:  20,
			Capacity:  50,
		},
	}}
	studios := &fakeStudioReader{studios: map[uint]domain.Studio{
		7: {ID: 7, Name: "Studio One", BCHAddress: "bchtest:qpayout"},
	}}
	w := &fakeWallet{balances: map[string]float64{}}
	mailer := &fakeMailer{}
	rates := fixedRate{rate: Rate{BCHToUSD: 360, Timestamp: time.Now()}}

	svc := NewPaymentService(conf, addrs, signups, events, studios, w, fakeKeys{}, mailer, rates)

	return &paymentFixture{
		svc:     svc,
		addrs:   addrs,
		signups: signups,
		wallet:  w,
		mailer:  mailer,
	}
}

func pendingSignup() *domain.Signup {
	return &domain.Signup{
		ID:            "11111111-2222-3333-4444-555555555555",
		EventID:       1,
		AttendeeName:  "Dana",
		AttendeeEmail: "dana@example.com",
		Status:        domain.SignupStatusPending,
	}
}

func TestPaymentService_QuoteBCH(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	quote, rate, err := f.svc.QuoteBCH(context.Background(), signup.ID)

	require.NoError(t, err)
	assert.Equal(t, 360.0, rate.BCHToUSD)
	// $20 with a 10% BCH discount at $360/BCH.
	assert.InDelta(t, 0.05, quote, 1e-9)
}

func TestPaymentService_IssueAddress(t *testing.T) {
	t.Run("quotes the amount when none is given", func(t *testing.T) {
		signup := pendingSignup()
		f := newPaymentFixture(t, signup)

		addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0)

		require.NoError(t, err)
		assert.Equal(t, "bchtest:qaddr1", addr.Address)
		assert.InDelta(t, 0.05, addr.AmountBCH, 1e-9)
		assert.Equal(t, domain.AddressStatusAwaitingPayment, addr.Status)
		assert.True(t, addr.ExpiresAt.After(time.Now()))
	})

	t.Run("returns the existing address on repeat calls", func(t *testing.T) {
		signup := pendingSignup()
		f := newPaymentFixture(t, signup)

		first, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
		require.NoError(t, err)

		second, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
		require.NoError(t, err)

		assert.Equal(t, first.Address, second.Address)
		assert.Len(t, f.addrs.addresses, 1)
	})

	t.Run("rejects an expired address", func(t *testing.T) {
		signup := pendingSignup()
		f := newPaymentFixture(t, signup)

		addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
		require.NoError(t, err)

		addr.ExpiresAt = time.Now().Add(-time.Minute)
		f.addrs.addresses[signup.ID] = addr

		_, err = f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
		assert.ErrorIs(t, err, ErrPaymentAddressExpired)
	})

	t.Run("rejects a signup that is not pending", func(t *testing.T) {
		signup := pendingSignup()
		signup.Status = domain.SignupStatusConfirmed
		f := newPaymentFixture(t, signup)

		_, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
		assert.ErrorIs(t, err, ErrSignupNotPayable)
	})

	t.Run("rejects an unknown signup", func(t *testing.T) {
		f := newPaymentFixture(t, pendingSignup())

		_, err := f.svc.IssueAddress(context.Background(), "99999999-0000-0000-0000-000000000000", 0)
		assert.ErrorIs(t, err, ErrSignupNotFound)
	})
}

func TestPaymentService_VerifyPayment_Underpaid(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.01

	result, err := f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)

	require.NoError(t, err)
	assert.False(t, result.Confirmed)
	assert.Equal(t, 0.01, result.Balance)
	assert.Equal(t, 0.05, result.ExpectedAmount)

	// An underpaid address must leave the signup untouched.
	assert.Equal(t, domain.SignupStatusPending, f.signups.signups[signup.ID].Status)
	assert.Zero(t, f.wallet.mints)
	assert.Zero(t, f.wallet.sweeps)
	assert.Empty(t, f.mailer.sent)
}

func TestPaymentService_VerifyPayment_SettlesOnce(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.05

	result, err := f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)

	settled := f.signups.signups[signup.ID]
	assert.Equal(t, domain.SignupStatusConfirmed, settled.Status)
	assert.Equal(t, domain.PaymentMethodBCH, settled.PaymentMethod)
	assert.Equal(t, 20.0, settled.PricePaidUSD)
	assert.Equal(t, 0.05, settled.PricePaidBCH)
	assert.Equal(t, "minttx123", settled.NFTTxID)
	assert.NotEmpty(t, settled.CashStampID)
	require.NotNil(t, settled.ConfirmedAt)

	assert.Equal(t, 1, f.wallet.mints)
	assert.Equal(t, 1, f.wallet.sweeps)
	assert.Equal(t, "bchtest:qpayout", f.wallet.sweptTo)

	require.Len(t, f.addrs.stamps, 1)
	assert.InDelta(t, 0.0025, f.addrs.stamps[0].AmountBCH, 1e-9)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "dana@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "minttx123", f.mailer.sent[0].NFTTxID)

	// A second verification reports confirmed without re-running settlement.
	result, err = f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)

	assert.Equal(t, 1, f.signups.claims)
	assert.Equal(t, 1, f.wallet.mints)
	assert.Equal(t, 1, f.wallet.sweeps)
	assert.Len(t, f.mailer.sent, 1)
}

func TestPaymentService_VerifyPayment_MintFailureStillConfirms(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.05
	f.wallet.mintErr = fmt.Errorf("utxo too small")

	result, err := f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)

	settled := f.signups.signups[signup.ID]
	assert.Equal(t, domain.SignupStatusConfirmed, settled.Status)
	assert.Empty(t, settled.NFTTxID)
	assert.Equal(t, "utxo too small", settled.MintError)

	// The sweep and the email still run.
	assert.Equal(t, 1, f.wallet.sweeps)
	assert.Len(t, f.mailer.sent, 1)
}

func TestPaymentService_VerifyPayment_SweepFailureStillConfirms(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.05
	f.wallet.sweepErr = fmt.Errorf("gateway timeout")

	result, err := f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)

	settled := f.signups.signups[signup.ID]
	assert.Equal(t, domain.SignupStatusConfirmed, settled.Status)
	assert.Equal(t, 1, f.wallet.mints)
	assert.Len(t, f.mailer.sent, 1)
}

func TestPaymentService_VerifyPayment_ConfirmationFailureReleasesClaim(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.05
	f.signups.confirmationErr = fmt.Errorf("db down")

	_, err = f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.Error(t, err)

	assert.Equal(t, domain.SignupStatusFailed, f.signups.signups[signup.ID].Status)
	assert.Zero(t, f.wallet.mints)
	assert.Empty(t, f.mailer.sent)
}

func TestPaymentService_VerifyPayment_FailedSignupNotConfirmed(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	addr, err := f.svc.IssueAddress(context.Background(), signup.ID, 0.05)
	require.NoError(t, err)

	f.wallet.balances[addr.Address] = 0.05
	f.signups.signups[signup.ID].Status = domain.SignupStatusFailed

	result, err := f.svc.VerifyPayment(context.Background(), addr.Address, signup.ID)
	require.NoError(t, err)

	// A released signup is terminal: a covering balance must not report it
	// as confirmed, and no settlement runs.
	assert.False(t, result.Confirmed)
	assert.Zero(t, f.wallet.mints)
	assert.Zero(t, f.wallet.sweeps)
	assert.Empty(t, f.mailer.sent)
	assert.Equal(t, domain.SignupStatusFailed, f.signups.signups[signup.ID].Status)
}

func TestPaymentService_VerifyPayment_UnknownAddress(t *testing.T) {
	signup := pendingSignup()
	f := newPaymentFixture(t, signup)

	_, err := f.svc.VerifyPayment(context.Background(), "bchtest:qunknown", signup.ID)
	assert.ErrorIs(t, err, ErrPaymentAddressNotFound)
}

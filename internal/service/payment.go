package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dancecash/dancecash-api/internal/config"
	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/email"
	"github.com/dancecash/dancecash-api/internal/pkg/cashstamp"
	"github.com/dancecash/dancecash-api/internal/repository"
	"github.com/dancecash/dancecash-api/internal/wallet"
)

var (
	ErrPaymentAddressNotFound = repository.ErrPaymentAddressNotFound
	ErrPaymentAddressExpired  = errors.New("payment address has expired")
	ErrSignupNotPayable       = errors.New("signup cannot accept a payment")
	ErrInvalidAmount          = errors.New("payment amount must be positive")
)

// addressTTL bounds how long a deposit address stays payable.
const addressTTL = time.Hour

type PaymentAddressRepository interface {
	Create(ctx context.Context, addr domain.PaymentAddress, derive func(index uint32) (string, error)) (domain.PaymentAddress, error)
	FindBySignupID(ctx context.Context, signupID string) (domain.PaymentAddress, error)
	FindByAddressAndSignupID(ctx context.Context, address, signupID string) (domain.PaymentAddress, error)
	MarkPaid(ctx context.Context, id uint) error
	CreateCashStamp(ctx context.Context, stamp domain.CashStamp) (domain.CashStamp, error)
}

type SettlementSignupRepository interface {
	FindByID(ctx context.Context, id string) (domain.Signup, error)
	Claim(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	RecordConfirmation(ctx context.Context, id string, method string, paidUSD, paidBCH float64, eventName string, confirmedAt time.Time) error
	RecordMint(ctx context.Context, id, txID string) error
	RecordMintError(ctx context.Context, id, mintErr string) error
	RecordCashStampID(ctx context.Context, id, cashStampID string) error
}

type SettlementStudioReader interface {
	FindByID(ctx context.Context, id uint) (domain.Studio, error)
}

// WalletClient is the slice of the wallet gateway the settlement sequence
// needs.
type WalletClient interface {
	Balance(ctx context.Context, address string) (float64, error)
	MintTicket(ctx context.Context, wif, destination, commitment string) (string, error)
	Sweep(ctx context.Context, wif, payoutAddress string) (string, error)
}

type KeyDeriver interface {
	Address(index uint32) (string, error)
	WIF(index uint32) (string, error)
}

type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, c email.Confirmation) error
}

type RateProvider interface {
	CurrentRate(ctx context.Context) Rate
}

type VerifyResult struct {
	Confirmed      bool
	Balance        float64
	ExpectedAmount float64
}

type PaymentService struct {
	conf    *config.BCHConfig
	addrs   PaymentAddressRepository
	signups SettlementSignupRepository
	events  SignupEventReader
	studios SettlementStudioReader
	wallet  WalletClient
	keys    KeyDeriver
	mailer  ConfirmationMailer
	rates   RateProvider
}

func NewPaymentService(
	conf *config.BCHConfig,
	addrs PaymentAddressRepository,
	signups SettlementSignupRepository,
	events SignupEventReader,
	studios SettlementStudioReader,
	walletClient WalletClient,
	keys KeyDeriver,
	mailer ConfirmationMailer,
	rates RateProvider,
) *PaymentService {
	return &PaymentService{
		conf:    conf,
		addrs:   addrs,
		signups: signups,
		events:  events,
		studios: studios,
		wallet:  walletClient,
		keys:    keys,
		mailer:  mailer,
		rates:   rates,
	}
}

// QuoteBCH prices a signup's event in BCH: the USD price less the BCH
// discount, converted at the current rate.
func (s *PaymentService) QuoteBCH(ctx context.Context, signupID string) (float64, Rate, error) {
	signup, err := s.signups.FindByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, repository.ErrSignupNotFound) {
			return 0, Rate{}, ErrSignupNotFound
		}

		return 0, Rate{}, fmt.Errorf("s.signups.FindByID -> %w", err)
	}

	event, err := s.events.FindByID(ctx, signup.EventID)
	if err != nil {
		return 0, Rate{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	rate := s.rates.CurrentRate(ctx)
	discounted := event.PriceUSD * (1 - s.conf.DiscountPercent/100)

	return discounted / rate.BCHToUSD, rate, nil
}

// IssueAddress creates (or returns) the single-use deposit address for a
// signup. When amountBCH is zero the amount is quoted server-side.
func (s *PaymentService) IssueAddress(ctx context.Context, signupID string, amountBCH float64) (domain.PaymentAddress, error) {
	if amountBCH < 0 {
		return domain.PaymentAddress{}, ErrInvalidAmount
	}

	signup, err := s.signups.FindByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, repository.ErrSignupNotFound) {
			return domain.PaymentAddress{}, ErrSignupNotFound
		}

		return domain.PaymentAddress{}, fmt.Errorf("s.signups.FindByID -> %w", err)
	}
	if signup.Status != domain.SignupStatusPending {
		return domain.PaymentAddress{}, ErrSignupNotPayable
	}

	existing, err := s.addrs.FindBySignupID(ctx, signupID)
	if err == nil {
		if existing.IsExpired(time.Now()) {
			return domain.PaymentAddress{}, ErrPaymentAddressExpired
		}

		return existing, nil
	}
	if !errors.Is(err, repository.ErrPaymentAddressNotFound) {
		return domain.PaymentAddress{}, fmt.Errorf("s.addrs.FindBySignupID -> %w", err)
	}

	if amountBCH == 0 {
		amountBCH, _, err = s.QuoteBCH(ctx, signupID)
		if err != nil {
			return domain.PaymentAddress{}, err
		}
	}

	created, err := s.addrs.Create(ctx, domain.PaymentAddress{
		SignupID:  signupID,
		AmountBCH: amountBCH,
		Status:    domain.AddressStatusAwaitingPayment,
		ExpiresAt: time.Now().Add(addressTTL),
	}, s.keys.Address)
	if err != nil {
		return domain.PaymentAddress{}, fmt.Errorf("s.addrs.Create -> %w", err)
	}

	return created, nil
}

// VerifyPayment checks the on-chain balance of a signup's deposit address
// and, the first time the balance covers the expected amount, runs the
// settlement sequence. The signup is claimed with a conditional
// pending -> confirming update first, so concurrent polls and repeat calls
// observe the result without re-running any side effect.
func (s *PaymentService) VerifyPayment(ctx context.Context, address, signupID string) (VerifyResult, error) {
	addr, err := s.addrs.FindByAddressAndSignupID(ctx, address, signupID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentAddressNotFound) {
			return VerifyResult{}, ErrPaymentAddressNotFound
		}

		return VerifyResult{}, fmt.Errorf("s.addrs.FindByAddressAndSignupID -> %w", err)
	}

	balance, err := s.wallet.Balance(ctx, addr.Address)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("s.wallet.Balance -> %w", err)
	}

	result := VerifyResult{
		Balance:        balance,
		ExpectedAmount: addr.AmountBCH,
	}

	if balance < addr.AmountBCH {
		return result, nil
	}

	if err = s.signups.Claim(ctx, signupID); err != nil {
		if errors.Is(err, repository.ErrSignupNotClaimable) {
			// The signup left "pending" before us: settled (or being
			// settled) by an earlier poll tick, or released to "failed".
			// Only the former counts as confirmed.
			signup, findErr := s.signups.FindByID(ctx, signupID)
			if findErr != nil {
				return VerifyResult{}, fmt.Errorf("s.signups.FindByID -> %w", findErr)
			}

			result.Confirmed = signup.Status == domain.SignupStatusConfirming ||
				signup.Status == domain.SignupStatusConfirmed

			return result, nil
		}

		return VerifyResult{}, fmt.Errorf("s.signups.Claim -> %w", err)
	}

	if err = s.settle(ctx, addr, signupID, balance); err != nil {
		return VerifyResult{}, err
	}
	result.Confirmed = true

	return result, nil
}

func (s *PaymentService) settle(ctx context.Context, addr domain.PaymentAddress, signupID string, balance float64) error {
	log := zap.L().With(zap.String("signup_id", signupID), zap.String("address", addr.Address))

	signup, err := s.signups.FindByID(ctx, signupID)
	if err != nil {
		return fmt.Errorf("s.signups.FindByID -> %w", err)
	}

	event, err := s.events.FindByID(ctx, signup.EventID)
	if err != nil {
		return fmt.Errorf("s.events.FindByID -> %w", err)
	}

	// The confirmation record is the one step that must succeed; without it
	// the signup is released to "failed" rather than left half settled.
	err = s.signups.RecordConfirmation(ctx, signupID, domain.PaymentMethodBCH, event.PriceUSD, balance, event.Name, time.Now())
	if err != nil {
		if statusErr := s.signups.UpdateStatus(ctx, signupID, domain.SignupStatusFailed); statusErr != nil {
			log.Error("failed to release claimed signup", zap.Error(statusErr))
		}

		return fmt.Errorf("s.signups.RecordConfirmation -> %w", err)
	}

	if err = s.addrs.MarkPaid(ctx, addr.ID); err != nil {
		log.Warn("failed to mark payment address paid", zap.Error(err))
	}

	// Everything below is best effort: a failed mint, sweep, cashstamp or
	// email leaves the signup confirmed.
	wif, err := s.keys.WIF(addr.DerivationIndex)
	if err != nil {
		log.Error("failed to derive spending key", zap.Error(err))
		wif = ""
	}

	mintTxID := ""
	if wif != "" {
		commitment := wallet.TicketCommitment(event.Name, signup.AttendeeName, signupID)

		mintTxID, err = s.wallet.MintTicket(ctx, wif, addr.Address, commitment)
		if err != nil {
			log.Error("nft mint failed", zap.Error(err))
			if recErr := s.signups.RecordMintError(ctx, signupID, err.Error()); recErr != nil {
				log.Error("failed to record mint error", zap.Error(recErr))
			}
		} else if recErr := s.signups.RecordMint(ctx, signupID, mintTxID); recErr != nil {
			log.Error("failed to record mint txid", zap.Error(recErr))
		}
	}

	studio, err := s.studios.FindByID(ctx, event.StudioID)
	if err != nil {
		log.Error("failed to load studio for sweep", zap.Error(err))
	}

	if wif != "" && studio.BCHAddress != "" {
		if _, err = s.wallet.Sweep(ctx, wif, studio.BCHAddress); err != nil {
			log.Error("sweep to studio failed", zap.Error(err))
		}
	} else if studio.BCHAddress == "" {
		log.Warn("studio has no payout address, funds left on deposit address")
	}

	stampAmount := balance * s.conf.CashbackPercent / 100
	stampID, qrData, err := cashstamp.Generate(studio.BCHAddress, stampAmount)
	if err != nil {
		log.Error("cashstamp generation failed", zap.Error(err))
	} else {
		_, err = s.addrs.CreateCashStamp(ctx, domain.CashStamp{
			ID:         stampID,
			SignupID:   signupID,
			QRCodeData: qrData,
			AmountBCH:  stampAmount,
		})
		if err != nil {
			log.Error("cashstamp insert failed", zap.Error(err))
		} else if recErr := s.signups.RecordCashStampID(ctx, signupID, stampID); recErr != nil {
			log.Error("failed to record cashstamp id", zap.Error(recErr))
		}
	}

	if signup.AttendeeEmail != "" {
		err = s.mailer.SendConfirmation(ctx, email.Confirmation{
			To:            signup.AttendeeEmail,
			AttendeeName:  signup.AttendeeName,
			EventName:     event.Name,
			EventDate:     event.Date,
			EventTime:     event.StartTime,
			EventLocation: event.Location,
			NFTTxID:       mintTxID,
		})
		if err != nil {
			log.Warn("confirmation email failed", zap.Error(err))
		}
	}

	if err = s.signups.UpdateStatus(ctx, signupID, domain.SignupStatusConfirmed); err != nil {
		return fmt.Errorf("s.signups.UpdateStatus -> %w", err)
	}

	return nil
}

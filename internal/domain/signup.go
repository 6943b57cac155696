package domain

import "time"

// Signup statuses form the settlement state machine. A signup is claimed
// for settlement with a conditional pending->confirming update, so the
// on-chain side effects (mint, sweep, cashstamp, email) run at most once
// no matter how often the client polls the verify endpoint.
const (
	SignupStatusPending    = "pending"
	SignupStatusConfirming = "confirming"
	SignupStatusConfirmed  = "confirmed"
	SignupStatusFailed     = "failed"
)

// Payment methods recorded on a settled signup.
const (
	PaymentMethodBCH  = "bch"
	PaymentMethodDoor = "door"
)

type Signup struct {
	ID            string     `json:"id"`
	EventID       uint       `json:"event_id"`
	Event         *Event     `json:"event,omitempty"`
	AttendeeName  string     `json:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email,omitempty"`
	AttendeePhone string     `json:"attendee_phone,omitempty"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PricePaidUSD  float64    `json:"price_paid_usd,omitempty"`
	PricePaidBCH  float64    `json:"price_paid_bch,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	NFTTxID       string     `json:"nft_txid,omitempty"`
	MintError     string     `json:"mint_error,omitempty"`
	EventName     string     `json:"event_name,omitempty"`
	CashStampID   string     `json:"cashstamp_id,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *Signup) IsSettled() bool {
	return s.Status == SignupStatusConfirmed
}

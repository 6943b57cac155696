package domain

import "time"

const (
	AddressStatusAwaitingPayment = "awaiting_payment"
	AddressStatusPaid            = "paid"
	AddressStatusExpired         = "expired"
)

// PaymentAddress is a single-use deposit address for one signup. The row
// holds no key material: DerivationIndex locates the child key under the
// server's master key, so the spending key can be re-derived at settlement
// time and never touches the database.
type PaymentAddress struct {
	ID              uint      `json:"id"`
	SignupID        string    `json:"signup_id"`
	Address         string    `json:"address"`
	DerivationIndex uint32    `json:"derivation_index"`
	AmountBCH       float64   `json:"amount_bch"`
	Status          string    `json:"status"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (a *PaymentAddress) IsExpired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// CashStamp is the cashback reward minted during settlement: a claimable
// QR payload worth a fixed percentage of the received payment.
type CashStamp struct {
	ID         string    `json:"id"`
	SignupID   string    `json:"signup_id"`
	QRCodeData string    `json:"qr_code_data"`
	AmountBCH  float64   `json:"amount_bch"`
	Claimed    bool      `json:"claimed"`
	CreatedAt  time.Time `json:"created_at"`
}

// Payment records a door-payment checkout (no on-chain settlement).
type Payment struct {
	ID        uint      `json:"id"`
	SignupID  string    `json:"signup_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	TxHash    string    `json:"tx_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

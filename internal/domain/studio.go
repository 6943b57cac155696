package domain

import "time"

// Studio is an event organizer account. BCHAddress is the payout address
// that single-use payment addresses are swept to after settlement.
type Studio struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	BCHAddress  string    `json:"bch_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package response

import "time"

// RateResponse always renders with HTTP 200; Error is populated when the
// fallback rate was substituted for a failed upstream call.
type RateResponse struct {
	BCHToUSD  float64   `json:"bchToUsd"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

type AddressResponse struct {
	Address   string    `json:"address"`
	AmountBCH float64   `json:"amountBch"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyResponse struct {
	Confirmed      bool    `json:"confirmed"`
	Balance        float64 `json:"balance"`
	ExpectedAmount float64 `json:"expectedAmount"`
}

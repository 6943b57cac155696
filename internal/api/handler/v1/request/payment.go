package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type GenerateAddressRequest struct {
	SignupID string `json:"signupId"`
	// AmountBCH is optional; zero means "quote it server-side".
	AmountBCH float64 `json:"amountBch"`
}

func (req *GenerateAddressRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SignupID, validation.Required, is.UUID),
		validation.Field(&req.AmountBCH, validation.Min(0.0)),
	)
}

type VerifyPaymentRequest struct {
	Address  string `json:"address"`
	SignupID string `json:"signupId"`
}

func (req *VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Address, validation.Required),
		validation.Field(&req.SignupID, validation.Required, is.UUID),
	)
}

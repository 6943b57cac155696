package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSignupRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateSignupRequest{Name: "Alex"}).Validate())
	assert.NoError(t, (&CreateSignupRequest{Name: "Alex", Email: "alex@example.com", Phone: "+49123456"}).Validate())
	assert.Error(t, (&CreateSignupRequest{}).Validate())
	assert.Error(t, (&CreateSignupRequest{Name: "A"}).Validate())
	assert.Error(t, (&CreateSignupRequest{Name: "Alex", Email: "nope"}).Validate())
}

func TestCheckoutRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CheckoutRequest{Name: "Alex", Amount: 15, Currency: "USD"}).Validate())
	assert.NoError(t, (&CheckoutRequest{Name: "Alex", Amount: 0.05, Currency: "BCH"}).Validate())
	assert.Error(t, (&CheckoutRequest{Name: "Alex", Amount: 15, Currency: "EUR"}).Validate())
	assert.Error(t, (&CheckoutRequest{Amount: 15, Currency: "USD"}).Validate())
}

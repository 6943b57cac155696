package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSignupID = "11111111-2222-3333-4444-555555555555"

func TestGenerateAddressRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GenerateAddressRequest{SignupID: testSignupID}).Validate())
	assert.NoError(t, (&GenerateAddressRequest{SignupID: testSignupID, AmountBCH: 0.05}).Validate())
	assert.Error(t, (&GenerateAddressRequest{}).Validate())
	assert.Error(t, (&GenerateAddressRequest{SignupID: "not-a-uuid"}).Validate())
	assert.Error(t, (&GenerateAddressRequest{SignupID: testSignupID, AmountBCH: -1}).Validate())
}

func TestVerifyPaymentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&VerifyPaymentRequest{Address: "bchtest:qexample", SignupID: testSignupID}).Validate())
	assert.Error(t, (&VerifyPaymentRequest{SignupID: testSignupID}).Validate())
	assert.Error(t, (&VerifyPaymentRequest{Address: "bchtest:qexample"}).Validate())
	assert.Error(t, (&VerifyPaymentRequest{Address: "bchtest:qexample", SignupID: "bad"}).Validate())
}

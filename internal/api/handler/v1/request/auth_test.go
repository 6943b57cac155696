package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "studio@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Studio One",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *SignupRequest) {},
		},
		{
			name:    "invalid email",
			mutate:  func(r *SignupRequest) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "password too short",
			mutate:  func(r *SignupRequest) { r.Password, r.ConfirmPassword = "abc1", "abc1" },
			wantErr: true,
		},
		{
			name:    "password without a number",
			mutate:  func(r *SignupRequest) { r.Password, r.ConfirmPassword = "passwords", "passwords" },
			wantErr: true,
		},
		{
			name:    "password without a letter",
			mutate:  func(r *SignupRequest) { r.Password, r.ConfirmPassword = "12345678", "12345678" },
			wantErr: true,
		},
		{
			name:    "mismatched confirmation",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "password2" },
			wantErr: true,
		},
		{
			name:    "name too short",
			mutate:  func(r *SignupRequest) { r.Name = "A" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "studio@example.com", Password: "password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "studio@example.com", Password: ""}).Validate())
}

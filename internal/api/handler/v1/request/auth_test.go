package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reddrop/reddrop-api/internal/api/handler/v1/request"
)

func validSignup() request.SignupRequest {
	return request.SignupRequest{
		Email:           "donor@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Donor",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := validSignup()
		req.Password = "pass1"
		req.ConfirmPassword = "pass1"
		assert.Error(t, req.Validate())
	})

	t.Run("password needs a digit", func(t *testing.T) {
		req := validSignup()
		req.Password = "passwords"
		req.ConfirmPassword = "passwords"
		assert.Error(t, req.Validate())
	})

	t.Run("password needs a letter", func(t *testing.T) {
		req := validSignup()
		req.Password = "12345678"
		req.ConfirmPassword = "12345678"
		assert.Error(t, req.Validate())
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		req := validSignup()
		req.ConfirmPassword = "password2"
		assert.Error(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	req := request.LoginRequest{Email: "donor@example.com", Password: "password1"}
	assert.NoError(t, req.Validate())

	req.Password = ""
	assert.Error(t, req.Validate())
}

package authview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorMessages(t *testing.T) {
	assert.EqualError(t, validateEmail(""), "email is required")
	assert.EqualError(t, validateEmail("   "), "email is required")
	assert.EqualError(t, validateEmail("no-at-sign"), "invalid email address")
	assert.NoError(t, validateEmail("user@example.com"))

	assert.EqualError(t, validateRequired("password")(""), "password is required")
	assert.NoError(t, validateRequired("password")("hunter2"))
}

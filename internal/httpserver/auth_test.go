package httpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuthPlaintext(t *testing.T) {
	auth := NewAdminAuth("hunter2", "")
	assert.True(t, auth.Authorize("hunter2"))
	assert.False(t, auth.Authorize("hunter"))
	assert.False(t, auth.Authorize(""))
}

func TestAdminAuthBcryptTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := NewAdminAuth("plaintext-ignored", string(hash))
	assert.True(t, auth.Authorize("s3cret"))
	assert.False(t, auth.Authorize("plaintext-ignored"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
)

func TestAuthenticate(t *testing.T) {
	policy := NewPolicy("s3cret")

	assert.NoError(t, policy.Authenticate("s3cret"))
	assert.Equal(t, ErrorUnauthorized, policy.Authenticate("wrong"))
	assert.Equal(t, ErrorUnauthorized, policy.Authenticate(""))
}

func TestAuthenticateNoPasswordDisablesWrites(t *testing.T) {
	policy := NewPolicy("")

	// With no password configured, nothing authenticates; not even
	// the empty string.
	err := policy.Authenticate("")
	assert.Error(t, err)
	assert.True(t, backenderr.IsUnauthorized(err))
	assert.Error(t, policy.Authenticate("anything"))
}

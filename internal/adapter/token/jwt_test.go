package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	signed, err := issuer.Issue(42, domain.RoleStaff)
	require.NoError(t, err)

	userID, role, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleStaff, role)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := NewJWTIssuer("secret-a", time.Hour).Issue(1, domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewJWTIssuer("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(1, domain.RoleUser)
	require.NoError(t, err)

	_, _, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, _, err := NewJWTIssuer("test-secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

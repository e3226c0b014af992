package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	mgr := NewManager(Config{Secret: "test-secret", ExpireMinutes: 5})

	signed, err := mgr.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, claims, err := mgr.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager(Config{Secret: "one"}).Issue(1, "bob")
	require.NoError(t, err)

	_, _, err = NewManager(Config{Secret: "two"}).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, _, err := NewManager(Config{Secret: "one"}).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

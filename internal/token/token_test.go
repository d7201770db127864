package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-token-tests-0123456789"

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer(testSecret)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuerWithValidity(testSecret, -time.Minute)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewIssuer(testSecret).Issue(42)
	require.NoError(t, err)

	_, err = NewIssuer("a-completely-different-secret-value").Verify(tok)
	assert.Error(t, err)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer(testSecret)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := issuer.Verify(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}

func TestIssueWithoutSecret(t *testing.T) {
	issuer := NewIssuer("")
	_, err := issuer.Issue(1)
	assert.Error(t, err)
}

func TestVerifyZeroUserID(t *testing.T) {
	issuer := NewIssuer(testSecret)

	tok, err := issuer.Issue(0)
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.Error(t, err)
}

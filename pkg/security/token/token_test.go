package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", "authd-test", 15*time.Minute, time.Hour)
}

func TestIssueAccess_VerifyRoundtrip(t *testing.T) {
	m := newTestManager()

	signed, issued, err := m.IssueAccess(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, TypeAccess, issued.Type)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Verify(signed, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "authd-test", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerify_TypeConfusionRejected(t *testing.T) {
	m := newTestManager()

	access, _, err := m.IssueAccess(1)
	require.NoError(t, err)
	refresh, _, err := m.IssueRefresh(1)
	require.NoError(t, err)

	_, err = m.Verify(access, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = m.Verify(refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("test-secret", "authd-test", -time.Minute, -time.Minute)

	signed, _, err := m.IssueAccess(1)
	require.NoError(t, err)

	// Validly signed but past exp.
	_, err = m.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, _, err := newTestManager().IssueAccess(1)
	require.NoError(t, err)

	other := NewManager("another-secret", "authd-test", 15*time.Minute, time.Hour)
	_, err = other.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_WrongIssuer(t *testing.T) {
	signed, _, err := newTestManager().IssueAccess(1)
	require.NoError(t, err)

	other := NewManager("test-secret", "someone-else", 15*time.Minute, time.Hour)
	_, err = other.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	m := newTestManager()
	_, err := m.Verify("not.a.jwt", TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_MissingSubject(t *testing.T) {
	m := newTestManager()

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "authd-test",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Type: TypeAccess,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_RejectsNonHMACAlg(t *testing.T) {
	m := newTestManager()

	// alg=none style token must never pass.
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "authd-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Type: TypeAccess,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret")
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	ts := newTestTokens(t)

	token, exp, err := ts.Issue("subject-1", domain.RoleEmployee)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.ID)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestIssue_RejectsUnknownRole(t *testing.T) {
	ts := newTestTokens(t)
	_, _, err := ts.Issue("subject-1", domain.Role("owner"))
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	ts := newTestTokens(t)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return issued }

	token, _, err := ts.Issue("subject-1", domain.RoleAdmin)
	require.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = ts.Verify(token)
	require.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(24*time.Hour + time.Second) }
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_TamperedSignature(t *testing.T) {
	ts := newTestTokens(t)
	token, _, err := ts.Issue("subject-1", domain.RoleAdmin)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	ts := newTestTokens(t)
	adminToken, _, err := ts.Issue("subject-1", domain.RoleEmployee)
	require.NoError(t, err)
	other, _, err := ts.Issue("subject-2", domain.RoleAdmin)
	require.NoError(t, err)

	a := strings.Split(adminToken, ".")
	b := strings.Split(other, ".")
	spliced := strings.Join([]string{a[0], b[1], a[2]}, ".")

	_, err = ts.Verify(spliced)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	ts := newTestTokens(t)
	other, err := NewTokenService("other-secret")
	require.NoError(t, err)

	token, _, err := other.Issue("subject-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	ts := newTestTokens(t)
	claims := &Claims{
		ID:   "subject-1",
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	ts := newTestTokens(t)
	claims := &Claims{ID: "subject-1", Role: domain.RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	ts := newTestTokens(t)
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := ts.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

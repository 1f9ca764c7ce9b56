package jwtPkg

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now func() time.Time) ITokenService {
	t.Helper()
	svc, err := NewWithClock(Config{
		Secret:         []byte("test-secret"),
		Algorithm:      "HS256",
		AccessTokenTTL: 30 * time.Minute,
	}, now)
	require.NoError(t, err)
	return svc
}

func TestIssueThenValidateReturnsUserID(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })

	for _, id := range []int64{1, 42, 1 << 40} {
		token, expiresAt, err := svc.Issue(id)
		require.NoError(t, err)
		assert.True(t, expiresAt.After(fixedNow))
		assert.Equal(t, fixedNow.Add(30*time.Minute), expiresAt)

		got, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestValidateFailsAfterExpiry(t *testing.T) {
	now := fixedNow
	svc := newTestService(t, func() time.Time { return now })

	token, _, err := svc.Issue(7)
	require.NoError(t, err)

	now = fixedNow.Add(30*time.Minute - time.Second)
	_, err = svc.Validate(token)
	assert.NoError(t, err, "token is still valid just before expiry")

	now = fixedNow.Add(30*time.Minute + time.Second)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })

	token, _, err := svc.Issue(7)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })
	other, err := NewWithClock(Config{
		Secret:         []byte("another-secret"),
		Algorithm:      "HS256",
		AccessTokenTTL: 30 * time.Minute,
	}, func() time.Time { return fixedNow })
	require.NoError(t, err)

	token, _, err := other.Issue(7)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongAlgorithm(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })

	id := int64(7)
	claims := Claims{
		UserID: &id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Validate(hs384)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Validate(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMissingClaims(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Validate(noUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	id := int64(3)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: &id}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Validate(noExpiry)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMalformed(t *testing.T) {
	svc := newTestService(t, func() time.Time { return fixedNow })

	for _, token := range []string{"", "abc", "a.b.c", "not.a.jwt.at.all"} {
		_, err := svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Algorithm: "HS256", AccessTokenTTL: time.Minute})
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = New(Config{Secret: []byte("s"), Algorithm: "RS256", AccessTokenTTL: time.Minute})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	_, err = New(Config{Secret: []byte("s"), Algorithm: "HS512"})
	assert.ErrorIs(t, err, ErrNonPositiveExpires)
}

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearer("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc"} {
		_, err := ExtractBearer(header)
		assert.ErrorIs(t, err, ErrInvalidToken, "header %q", header)
	}
}

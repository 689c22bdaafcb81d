package principal_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/principal"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := principal.NewVerifier("s3cret")
	staff := principal.Principal{ID: kernel.NewUUID(), Role: principal.RoleStaff}

	token, err := v.Sign(staff, time.Hour, time.Now())
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, staff, got)
}

func TestVerifier_Rejects(t *testing.T) {
	v := principal.NewVerifier("s3cret")
	p := principal.Principal{ID: kernel.NewUUID(), Role: principal.RoleCustomer}

	expired, err := v.Sign(p, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreign, err := principal.NewVerifier("other").Sign(p, time.Hour, time.Now())
	require.NoError(t, err)
	unknownRole, err := v.Sign(principal.Principal{ID: kernel.NewUUID(), Role: "courier"}, time.Hour, time.Now())
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: p.ID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify("")
	assert.ErrorIs(t, err, principal.ErrMissingToken)

	for name, token := range map[string]string{
		"expired":      expired,
		"other secret": foreign,
		"unknown role": unknownRole,
		"alg none":     none,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.ErrorIs(t, err, principal.ErrInvalidToken)
		})
	}
}

func TestPrincipal_Is(t *testing.T) {
	staff := principal.Principal{ID: kernel.NewUUID(), Role: principal.RoleStaff}
	admin := principal.Principal{ID: kernel.NewUUID(), Role: principal.RoleAdmin}

	assert.True(t, staff.Is(principal.RoleStaff))
	assert.False(t, staff.Is(principal.RoleCustomer, principal.RoleCheckout))
	assert.True(t, admin.Is(principal.RoleCustomer))
}

func TestContext(t *testing.T) {
	_, ok := principal.FromContext(context.Background())
	assert.False(t, ok)

	p := principal.Principal{ID: kernel.NewUUID(), Role: principal.RoleCheckout}
	got, ok := principal.FromContext(principal.WithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Equal(t, p, got)
}

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/core/domain/model/shipper"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = auth.Principal{ID: "A1", Email: "ops@fleet.io", Role: shipper.RoleAdmin}

func TestVerifier_RoundTrip(t *testing.T) {
	// Given
	v, err := auth.NewVerifier("secret", "fleetops")
	require.NoError(t, err)
	token, err := v.Issue(admin, time.Hour)
	require.NoError(t, err)

	// When
	p, err := v.Verify(token)

	// Then
	require.NoError(t, err)
	assert.Equal(t, admin, *p)
	assert.Equal(t, "A1", p.Actor().ID)
	assert.Equal(t, shipper.RoleAdmin, p.Actor().Role)
}

func TestVerifier_Rejects(t *testing.T) {
	v, err := auth.NewVerifier("secret", "fleetops")
	require.NoError(t, err)

	t.Run("expired_token", func(t *testing.T) {
		token, err := v.Issue(admin, -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("other_secret", func(t *testing.T) {
		other, err := auth.NewVerifier("other", "fleetops")
		require.NoError(t, err)
		token, err := other.Issue(admin, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(token)

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("other_issuer", func(t *testing.T) {
		other, err := auth.NewVerifier("secret", "someone-else")
		require.NoError(t, err)
		token, err := other.Issue(admin, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(token)

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not-a-token")

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := auth.NewVerifier("", "")

	require.ErrorIs(t, err, auth.ErrSecretIsEmpty)
}

func TestMiddleware(t *testing.T) {
	v, err := auth.NewVerifier("secret", "")
	require.NoError(t, err)
	adminToken, err := v.Issue(admin, time.Hour)
	require.NoError(t, err)
	fieldToken, err := v.Issue(auth.Principal{ID: "S1", Role: shipper.RoleShipper}, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	ok := func(c echo.Context) error {
		p, _ := auth.FromContext(c.Request().Context())
		return c.String(http.StatusOK, p.ID)
	}
	e.GET("/read", ok, auth.Authenticate(v))
	e.POST("/write", ok, auth.Authenticate(v), auth.RequireAdmin())

	tests := []struct {
		name   string
		method string
		target string
		header string
		want   int
	}{
		{"no_token", http.MethodGet, "/read", "", http.StatusUnauthorized},
		{"bad_scheme", http.MethodGet, "/read", "Basic abc", http.StatusUnauthorized},
		{"header_token", http.MethodGet, "/read", "Bearer " + fieldToken, http.StatusOK},
		{"query_token", http.MethodGet, "/read?access_token=" + fieldToken, "", http.StatusOK},
		{"field_role_cannot_write", http.MethodPost, "/write", "Bearer " + fieldToken, http.StatusForbidden},
		{"admin_can_write", http.MethodPost, "/write", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

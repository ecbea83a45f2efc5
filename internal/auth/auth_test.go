package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims Claims, secret []byte) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	return token
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		claims  Claims
		secret  []byte
		wantID  string
		wantErr error
	}{
		{
			name:   "user_id claim",
			claims: Claims{UserID: "user-1"},
			secret: testSecret,
			wantID: "user-1",
		},
		{
			name: "subject fallback",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-1"},
			},
			secret: testSecret,
			wantID: "subject-1",
		},
		{
			name:    "no identity",
			claims:  Claims{},
			secret:  testSecret,
			wantErr: ErrMissingIdentity,
		},
		{
			name:    "wrong secret",
			claims:  Claims{UserID: "user-1"},
			secret:  []byte("other-secret"),
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired token",
			claims: Claims{
				UserID: "user-1",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			},
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, tt.claims, tt.secret)

			userID, err := ValidateToken(testSecret, token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, userID)
		})
	}
}

func TestMiddleware(t *testing.T) {
	var seenID string

	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seenID = UserID(r.Context())
	})
	handler := Middleware(testSecret)(next)

	t.Run("valid token injects identity", func(t *testing.T) {
		seenID = ""
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, Claims{UserID: "user-1"}, testSecret))

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "user-1", seenID)
	})

	t.Run("missing token leaves identity empty", func(t *testing.T) {
		seenID = "sentinel"
		req := httptest.NewRequest("GET", "/", nil)

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Empty(t, seenID)
	})

	t.Run("garbage token leaves identity empty", func(t *testing.T) {
		seenID = "sentinel"
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Empty(t, seenID)
	})
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(WithUserID(req.Context(), "user-1"))
		w := httptest.NewRecorder()

		RequireUser(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		w := httptest.NewRecorder()

		RequireUser(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

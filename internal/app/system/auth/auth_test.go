package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mapFetcher map[primitive.ObjectID]*Admin

func (f mapFetcher) FetchAdmin(_ context.Context, id primitive.ObjectID) *Admin {
	return f[id]
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	id := primitive.NewObjectID()

	tok, exp, err := m.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, NewTokenManager(testSecret, 0).TTL())
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, -time.Minute)
	tok, _, err := m.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tok, _, err := NewTokenManager(testSecret, time.Hour).Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-another-secret-xx", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   primitive.NewObjectID().Hex(),
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(r), "header %q", tt.header)
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)
	known := &Admin{ID: primitive.NewObjectID(), Email: "admin@example.com", Name: "Admin"}
	mw := NewMiddleware(tokens, mapFetcher{known.ID: known}, zap.NewNop())

	var seen *Admin
	h := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentAdmin(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	goodToken, _, err := tokens.Issue(known.ID)
	require.NoError(t, err)
	unknownToken, _, err := tokens.Issue(primitive.NewObjectID())
	require.NoError(t, err)
	expiredToken, _, err := NewTokenManager(testSecret, -time.Minute).Issue(known.ID)
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"no header", "", http.StatusUnauthorized, "Not authorized, no token"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, "Token expired"},
		{"unknown admin", "Bearer " + unknownToken, http.StatusUnauthorized, "Not authorized, admin not found"},
		{"valid", "Bearer " + goodToken, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantMessage, body["message"])
				assert.Nil(t, seen, "handler must not run")
			} else {
				require.NotNil(t, seen)
				assert.Equal(t, known.Email, seen.Email)
			}
		})
	}
}

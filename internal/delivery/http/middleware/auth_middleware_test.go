package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*dto.ClaimSet, error)
}

var _ service.TokenVerifier = (*mockVerifier)(nil)

func (m *mockVerifier) Verify(ctx context.Context, token string) (*dto.ClaimSet, error) {
	return m.VerifyFunc(ctx, token)
}

func TestAuthenticate(t *testing.T) {
	sub := uuid.New().String()
	verifier := &mockVerifier{
		VerifyFunc: func(ctx context.Context, token string) (*dto.ClaimSet, error) {
			if token == "good-token" {
				return &dto.ClaimSet{Sub: sub, Email: "alice@example.com", Iat: 1, Exp: 2}, nil
			}
			return nil, service.ErrUnauthorized
		},
	}
	m := NewAuthMiddleware(verifier)

	var gotUserID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotEmail, _ = GetUserEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer header", "Basic abc123", http.StatusUnauthorized},
		{"rejected token", "Bearer bad-token", http.StatusUnauthorized},
		{"accepted token", "Bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	require.Equal(t, sub, gotUserID)
	assert.Equal(t, "alice@example.com", gotEmail)
}

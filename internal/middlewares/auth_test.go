package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/recipe-share/internal/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	claims := &jwt.Claims{UserID: uuid.New(), TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name             string
		mockSetup        func(tok *MockTokener, rev *MockRevocationChecker)
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			mockSetup: func(tok *MockTokener, rev *MockRevocationChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(tok *MockTokener, rev *MockRevocationChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(nil, errors.New("invalid token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "RevokedToken",
			mockSetup: func(tok *MockTokener, rev *MockRevocationChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("revoked", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "revoked").
					Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(true, nil)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "DenylistUnavailable",
			mockSetup: func(tok *MockTokener, rev *MockRevocationChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, errors.New("redis down"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectNextCalled: false,
		},
		{
			name: "ValidToken",
			mockSetup: func(tok *MockTokener, rev *MockRevocationChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockRevocations := NewMockRevocationChecker(ctrl)
			tt.mockSetup(mockTokener, mockRevocations)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, claims, GetClaimsFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockRevocations)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			if !tt.expectNextCalled {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetClaimsFromContext(req.Context()))
}

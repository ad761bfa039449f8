package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "john@example.com", Name: "John"}

	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *MockLoginer)
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "secret").Return("token123", user, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"john@example.com","password":"wrong"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "wrong").Return("", nil, services.ErrInvalidCredentials)
			},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Invalid email or password",
		},
		{
			name: "unknown user",
			body: `{"email":"ghost@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "ghost@example.com", "secret").Return("", nil, services.ErrUserDoesNotExist)
			},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Invalid email or password",
		},
		{
			name: "internal error",
			body: `{"email":"john@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "john@example.com", "secret").Return("", nil, errors.New("db down"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
		{
			name:            "invalid json",
			body:            "not json",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
		{
			name:            "missing password",
			body:            `{"email":"john@example.com"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode != http.StatusOK {
				assert.Equal(t, tt.expectedMessage, decodeError(t, rr).Message)
				return
			}

			var resp models.AuthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "token123", resp.AccessToken)
			assert.Equal(t, *user, resp.User)
		})
	}
}

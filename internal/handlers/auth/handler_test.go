package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatq/infras/otel/mocks"
	authMocks "seatq/internal/domains/auth/mocks"
	"seatq/internal/domains/auth/model/dto"
	"seatq/internal/handlers/auth"
	"seatq/shared/failure"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		body      string
		setupMock func(m *authMocks.MockAuth)
		wantCode  int
	}{
		{
			name:   "login",
			target: "/auth/login",
			body:   `{"username":"host","password":"password"}`,
			setupMock: func(m *authMocks.MockAuth) {
				m.EXPECT().Login(gomock.Any(), dto.LoginRequest{Username: "host", Password: "password"}).
					Return(dto.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "login without password",
			target:    "/auth/login",
			body:      `{"username":"host"}`,
			setupMock: func(_ *authMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "login rejected",
			target: "/auth/login",
			body:   `{"username":"host","password":"nope"}`,
			setupMock: func(m *authMocks.MockAuth) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid username or password"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "refresh",
			target: "/auth/refresh-token",
			body:   `{"refresh_token":"r"}`,
			setupMock: func(m *authMocks.MockAuth) {
				m.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "r"}).
					Return(dto.RefreshTokenResponse{AccessToken: "a2"}, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := authMocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			router := chi.NewRouter()
			handler := auth.New(svc, mocks.NewOtel())
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

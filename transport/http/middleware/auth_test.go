package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatq/config"
	"seatq/infras/jwt"
	jwtMocks "seatq/infras/jwt/mocks"
	otelMocks "seatq/infras/otel/mocks"
	"seatq/permissions"
	"seatq/shared/constant"
	"seatq/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testAPIKey = "internal-key"

func newProtectedRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	mw := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), permissions.Get(), cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mw.APIKey)
		r.Use(mw.Auth)
		r.Use(mw.RBAC)

		r.Route("/v1/queue", func(r chi.Router) {
			r.Get("/", ok)
			r.Delete("/", ok)
		})
	})

	return router, jwtService
}

func TestAuthRole_PublicRouteSkipsToken(t *testing.T) {
	router, _ := newProtectedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/queue/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRole_StaffRoute(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		setup    func(j *jwtMocks.MockJWT)
		wantCode int
		wantUser string
	}{
		{
			name:     "missing header",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			header:   "Token abc",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "claims without username",
			header: "Bearer anonymous",
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("anonymous", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "wrong role",
			header: "Bearer guest",
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("guest", jwt.AccessToken).Return(&jwt.Claims{Username: "walkin", Role: "guest"}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "staff token",
			header: "Bearer valid",
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("valid", jwt.AccessToken).Return(&jwt.Claims{Username: "host", Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "host",
		},
		{
			name:   "unexpected validation error",
			header: "Bearer broken",
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("broken", jwt.AccessToken).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newProtectedRouter(t)
			tt.setup(jwtService)

			req := httptest.NewRequest(http.MethodDelete, "/v1/queue/", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}

func TestAuthRole_APIKey(t *testing.T) {
	t.Run("valid key bypasses auth", func(t *testing.T) {
		router, _ := newProtectedRouter(t)

		req := httptest.NewRequest(http.MethodDelete, "/v1/queue/", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, testAPIKey)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		router, _ := newProtectedRouter(t)

		req := httptest.NewRequest(http.MethodDelete, "/v1/queue/", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "nope")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

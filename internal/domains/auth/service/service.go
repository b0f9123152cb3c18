package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/subtle"
	"fmt"

	"seatq/config"
	"seatq/infras/jwt"
	"seatq/infras/otel"
	"seatq/internal/domains/auth/model/dto"
	"seatq/shared/constant"
	"seatq/shared/failure"
	"seatq/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	messageInvalidCredentials = "invalid username or password"
	messageInvalidRefresh     = "invalid refresh token"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Login checks the configured staff credentials. There is a single staff account.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin := s.cfg.Admin
	if admin.Username == constant.Empty || admin.PasswordHash == constant.Empty {
		log.Warn().Msg("login attempted but no staff account is configured")

		return res, failure.Unauthorized(messageInvalidCredentials)
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) != 1 {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(messageInvalidCredentials)
	}

	if err := password.Verify(req.Password, admin.PasswordHash); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(messageInvalidCredentials)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.Username, constant.RoleStaff)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken issues a new pair for a refresh token whose holder is still the configured staff account.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(messageInvalidRefresh)
	}

	if claims.Username != s.cfg.Admin.Username {
		log.Warn().Str("username", claims.Username).Msg("refresh token for a retired account")

		return res, failure.Unauthorized(messageInvalidRefresh)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(claims.Username, claims.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

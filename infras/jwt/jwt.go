// Package jwt issues and checks the HS256 token pair used by staff.
package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"seatq/config"
	"seatq/shared/constant"
	"seatq/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrTokenFormat  = errors.New("authorization header must start with 'Bearer '")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const scheme = "Bearer"

// Claims identify a staff member. Guests never hold tokens.
type Claims struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(username, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

// profile is how one token type is signed. Access and refresh tokens use
// different keys so one can never stand in for the other.
type profile struct {
	key []byte
	ttl time.Duration
}

type Service struct {
	issuer   string
	profiles map[TokenType]profile
	parser   *jwt.Parser
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		profiles: map[TokenType]profile{
			AccessToken:  {key: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {key: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuedAt()),
	}
}

func (s *Service) GenerateTokenPair(username, role string) (*TokenPair, error) {
	now := timezone.Now()
	pair := &TokenPair{
		TokenType: scheme,
		ExpiresIn: int64(s.profiles[AccessToken].ttl / time.Second),
	}

	var err error

	if pair.AccessToken, err = s.sign(username, role, AccessToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if pair.RefreshToken, err = s.sign(username, role, RefreshToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return pair, nil
}

func (s *Service) profile(tokenType TokenType) (profile, error) {
	p, ok := s.profiles[tokenType]
	if !ok {
		return profile{}, fmt.Errorf("unknown token type: %s", tokenType)
	}

	return p, nil
}

func (s *Service) sign(username, role string, tokenType TokenType, now time.Time) (string, error) {
	p, err := s.profile(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		Username: username,
		Role:     role,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses tokenString and checks that it is a live token of the wanted type.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	p, err := s.profile(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return p.key, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType, claims.Username == constant.Empty:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(authHeader, scheme+" ")
	if !ok || token == constant.Empty {
		return "", ErrTokenFormat
	}

	return token, nil
}

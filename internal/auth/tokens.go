package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"jobmarket_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	purposeAccess       = "access"
	purposeRefresh      = "refresh"
	purposeVerification = "email_verification"
)

type TokenPayload struct {
	UserID string
	Email  string
	Role   models.UserRole
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Claims struct {
	UserID  string          `json:"userId"`
	Email   string          `json:"email,omitempty"`
	Role    models.UserRole `json:"userType,omitempty"`
	Purpose string          `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	VerifyTTL     time.Duration
}

// TokenService signs and verifies HS256 tokens. Output depends only on the
// payload, the secrets and the clock.
type TokenService struct {
	cfg   TokenConfig
	clock Clock
}

func NewTokenService(cfg TokenConfig, clock Clock) *TokenService {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.VerifyTTL <= 0 {
		cfg.VerifyTTL = 24 * time.Hour
	}
	return &TokenService{cfg: cfg, clock: clock}
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.cfg.RefreshTTL
}

func (s *TokenService) Now() time.Time {
	return s.clock.Now()
}

// IssueTokenPair signs a fresh access/refresh pair. Each token carries a
// random jti so two pairs issued within the same second never collide.
func (s *TokenService) IssueTokenPair(p TokenPayload) (*TokenPair, error) {
	access, err := s.sign(p, purposeAccess, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(p, purposeRefresh, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) VerifyAccess(token string) (*Claims, error) {
	return s.verify(token, s.cfg.AccessSecret, purposeAccess)
}

func (s *TokenService) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(token, s.cfg.RefreshSecret, purposeRefresh)
}

// IssueVerificationToken signs the token carried by the email verification
// link. It is bound to userID and cannot be used as an access token.
func (s *TokenService) IssueVerificationToken(userID string) (string, error) {
	return s.sign(TokenPayload{UserID: userID}, purposeVerification, s.cfg.AccessSecret, s.cfg.VerifyTTL)
}

func (s *TokenService) VerifyVerificationToken(token, userID string) error {
	claims, err := s.parse(token, s.cfg.AccessSecret)
	if err != nil {
		return err
	}
	if claims.Purpose != purposeVerification || claims.UserID != userID {
		return ErrInvalidToken
	}
	return nil
}

func (s *TokenService) sign(p TokenPayload, purpose, secret string, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID:  p.UserID,
		Email:   p.Email,
		Role:    p.Role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (s *TokenService) verify(token, secret, purpose string) (*Claims, error) {
	claims, err := s.parse(token, secret)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose || claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) parse(token, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashToken is the session key for a refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateRandomToken returns n random bytes, hex encoded.
func GenerateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

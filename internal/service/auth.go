// Package service implements the application logic between the HTTP
// handlers and the stores.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

const (
	bcryptCost      = 12
	maxLoginFails   = 5
	lockoutDuration = 30 * time.Minute
)

// JWTClaims are the custom claims carried in access tokens.
type JWTClaims struct {
	UserID int         `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token rotation.
type AuthService struct {
	users      port.UserStore
	tokens     port.RefreshTokenStore
	logger     *zap.Logger
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users port.UserStore, tokens port.RefreshTokenStore, secret string, accessTTL, refreshTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		logger:     logger,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new client account. Email must be unique.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if !strings.Contains(req.Email, "@") {
		return nil, &domain.ErrValidation{Field: "email", Message: "invalid email"}
	}
	if len(req.Password) < 8 {
		return nil, &domain.ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, &domain.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Role:           domain.RoleClient,
		PasswordHash:   string(hash),
		RegisteredDate: time.Now(),
		Active:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return s.issueTokens(ctx, user)
}

// Login verifies credentials. After five consecutive failures the
// account is locked for thirty minutes.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}
	if !user.Active {
		return nil, &domain.ErrUnauthorized{Message: "account disabled"}
	}
	if user.LockedUntil != nil && time.Now().Before(*user.LockedUntil) {
		return nil, &domain.ErrUnauthorized{Message: "account temporarily locked"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		user.FailedAttempts++
		if user.FailedAttempts >= maxLoginFails {
			until := time.Now().Add(lockoutDuration)
			user.LockedUntil = &until
			user.FailedAttempts = 0
			s.logger.Warn("account locked after repeated failures", zap.Int("user_id", user.ID))
		}
		if _, err := s.users.Update(ctx, user); err != nil {
			s.logger.Error("recording failed login", zap.Error(err))
		}
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		if _, err := s.users.Update(ctx, user); err != nil {
			s.logger.Error("clearing login failures", zap.Error(err))
		}
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and
// a new pair is issued. Reuse of a revoked token revokes the whole
// session family.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*domain.AuthResponse, error) {
	hash := hashToken(raw)
	record, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid refresh token"}
	}
	if record.Revoked {
		// Token reuse: assume theft, drop every session for the user.
		if err := s.tokens.RevokeAllForUser(ctx, record.UserID); err != nil {
			s.logger.Error("revoking token family", zap.Error(err))
		}
		return nil, &domain.ErrUnauthorized{Message: "refresh token reused"}
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, &domain.ErrUnauthorized{Message: "refresh token expired"}
	}

	user, err := s.users.Get(ctx, record.UserID)
	if err != nil || !user.Active {
		return nil, &domain.ErrUnauthorized{Message: "invalid refresh token"}
	}

	if err := s.tokens.Revoke(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("revoking refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token for the user.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoking sessions: %w", err)
	}
	return nil
}

// ValidateAccessToken parses and verifies an access token.
func (s *AuthService) ValidateAccessToken(tokenStr string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid access token"}
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user domain.User) (*domain.AuthResponse, error) {
	now := time.Now()
	expires := now.Add(s.accessTTL)

	claims := JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}
	refresh := hex.EncodeToString(raw)

	if err := s.tokens.Save(ctx, domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("saving refresh token: %w", err)
	}

	return &domain.AuthResponse{
		User: user,
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresAt:    expires,
		},
	}, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/infrastructure/mail"
	"github.com/stunite/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Signups are restricted to institutional addresses.
var eduEmailPattern = regexp.MustCompile(`(?i)^[a-z0-9._-]+@stonybrook\.edu$`)

// IsEduEmail reports whether the address is an accepted institutional email.
func IsEduEmail(email string) bool {
	return eduEmailPattern.MatchString(email)
}

const (
	minPasswordLen   = 8
	resetTokenExpiry = time.Hour
)

type AuthUseCase struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	resetRepo     repository.PasswordResetRepository
	mailClient    *mail.Client
	jwtSecret     string
	sessionExpiry time.Duration
	siteURL       string
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	mailClient *mail.Client,
	jwtSecret string,
	sessionExpiry time.Duration,
	siteURL string,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		resetRepo:     resetRepo,
		mailClient:    mailClient,
		jwtSecret:     jwtSecret,
		sessionExpiry: sessionExpiry,
		siteURL:       siteURL,
	}
}

// AuthResult represents a successful sign-in
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// SignUp creates a fresh account. The record starts with the unique_id as a
// placeholder username and onboarding_complete false; onboarding fills in the
// rest.
func (uc *AuthUseCase) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if !eduEmailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: please use a valid @stonybrook.edu email address", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	uniqueID := uuid.NewString()
	user := &domain.User{
		UniqueID:     uniqueID,
		Username:     uniqueID,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies credentials and opens a session.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password, deviceInfo, ipAddress string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.createSession(ctx, user.UniqueID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// SignOut deletes the session backing the given token.
func (uc *AuthUseCase) SignOut(ctx context.Context, tokenString string) error {
	return uc.sessionRepo.DeleteByTokenHash(ctx, uc.hashToken(tokenString))
}

// ForgotPassword issues a reset token and mails the link. It deliberately
// succeeds for unknown addresses so the endpoint cannot be used to enumerate
// accounts.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	reset := &domain.PasswordReset{
		TokenHash:    uc.hashToken(token),
		UserUniqueID: user.UniqueID,
		ExpiresAt:    time.Now().Add(resetTokenExpiry),
	}
	if err := uc.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if uc.mailClient == nil {
		fmt.Printf("Warning: mail not configured, skipping password reset mail for %s\n", user.Email)
		return nil
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", uc.siteURL, url.QueryEscape(token))
	if _, err := uc.mailClient.SendPasswordReset(ctx, user.Email, link); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	tokenHash := uc.hashToken(token)
	reset, err := uc.resetRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return domain.ErrInvalidToken
	}
	if reset.IsExpired() {
		_ = uc.resetRepo.DeleteByTokenHash(ctx, tokenHash)
		return domain.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := uc.userRepo.UpdatePassword(ctx, reset.UserUniqueID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Whoever prompted the reset may hold a live session; revoke them all.
	if err := uc.sessionRepo.DeleteByUser(ctx, reset.UserUniqueID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return uc.resetRepo.DeleteByTokenHash(ctx, tokenHash)
}

// createSession creates a new session row and returns the signed JWT
func (uc *AuthUseCase) createSession(ctx context.Context, uniqueID, deviceInfo, ipAddress string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.sessionExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uniqueID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserUniqueID: uniqueID,
		TokenHash:    uc.hashToken(tokenString),
		DeviceInfo:   &deviceInfo,
		IPAddress:    &ipAddress,
		ExpiresAt:    expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies a session token and returns the profile's unique_id.
// The JWT must validate and the matching session row must still exist.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	uniqueID, ok := claims["uid"].(string)
	if !ok || uniqueID == "" {
		return "", domain.ErrInvalidToken
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.hashToken(tokenString))
	if err != nil {
		return "", domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return "", domain.ErrSessionExpired
	}

	return uniqueID, nil
}

// hashToken creates SHA256 hash of token for storage
func (uc *AuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

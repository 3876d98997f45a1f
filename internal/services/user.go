package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	repository "github.com/quickcart/storefront/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator issues and resolves session identities. Two implementations
// exist: the mock issuer accepts any credentials and mints unverified
// sessions, the JWT issuer requires registered accounts. Both store sessions
// the same way, so everything above this interface is unaware of the mode.
type Authenticator interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// NewAuthenticator selects the implementation by config mode.
func NewAuthenticator(cfg *config.Config, sessions repository.SessionRepository, accounts repository.AccountRepository, limiter repository.LoginRateLimiter) Authenticator {
	if cfg.Auth.Mode == "jwt" {
		return &jwtAuthenticator{
			sessions:  sessions,
			accounts:  accounts,
			limiter:   limiter,
			jwtKey:    []byte(cfg.Auth.JWTKey),
			ttl:       cfg.Session.TTL,
			sanitizer: bluemonday.StrictPolicy(),
		}
	}

	return &mockAuthenticator{
		sessions:  sessions,
		limiter:   limiter,
		ttl:       cfg.Session.TTL,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// mockAuthenticator mints a session for whoever asks. No credential ever gets
// verified; the token only needs to be unique enough to key a session.
type mockAuthenticator struct {
	sessions  repository.SessionRepository
	limiter   repository.LoginRateLimiter
	ttl       time.Duration
	sanitizer *bluemonday.Policy
}

// mockToken keeps the historical shape: a millisecond timestamp plus the
// email with '@' flattened to '_'.
func mockToken(email string) string {
	return fmt.Sprintf("mock_token_%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(email, "@", "_"))
}

func (a *mockAuthenticator) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	identity := &models.Identity{
		ID:    uuid.NewString(),
		Name:  a.sanitizer.Sanitize(req.Name),
		Email: req.Email,
		Token: mockToken(req.Email),
	}

	if err := a.sessions.Save(ctx, identity, a.ttl); err != nil {
		return nil, errors.SessionStoreError("Failed to store session").WithError(err)
	}

	return &models.AuthResponse{Success: true, Identity: identity}, nil
}

func (a *mockAuthenticator) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	allowed, _, retryAfter, err := a.limiter.Check(ctx, req.Email)
	if err != nil {
		return nil, errors.SessionStoreError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.AuthResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	// any credentials pass; the display name falls back to the email's
	// local part since nothing was ever registered
	name := req.Email
	if at := strings.Index(req.Email, "@"); at > 0 {
		name = req.Email[:at]
	}

	identity := &models.Identity{
		ID:    uuid.NewString(),
		Name:  name,
		Email: req.Email,
		Token: mockToken(req.Email),
	}

	if err := a.sessions.Save(ctx, identity, a.ttl); err != nil {
		return nil, errors.SessionStoreError("Failed to store session").WithError(err)
	}

	return &models.AuthResponse{Success: true, Identity: identity}, nil
}

func (a *mockAuthenticator) Logout(ctx context.Context, token string) error {

	if err := a.sessions.Delete(ctx, token); err != nil {
		return errors.SessionStoreError("Failed to delete session").WithError(err)
	}

	return nil
}

func (a *mockAuthenticator) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	return findSession(ctx, a.sessions, token)
}

// jwtAuthenticator is the substitutable real implementation: registered
// accounts, bcrypt, HS256 tokens. Sessions are still stored so that logout
// revokes a token before it expires.
type jwtAuthenticator struct {
	sessions  repository.SessionRepository
	accounts  repository.AccountRepository
	limiter   repository.LoginRateLimiter
	jwtKey    []byte
	ttl       time.Duration
	sanitizer *bluemonday.Policy
}

func (a *jwtAuthenticator) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	if req.Password == "" {
		return nil, errors.ValidationError("Password is required")
	}

	existing, err := a.accounts.FindByEmail(ctx, req.Email)
	if err != nil && !stderrors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.SessionStoreError("Failed to check account").WithError(err)
	}

	if existing != nil {
		return nil, errors.BadRequestError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Name:         a.sanitizer.Sanitize(req.Name),
		Email:        req.Email,
		PasswordHash: string(hashed),
	}

	if err := a.accounts.Save(ctx, account); err != nil {
		return nil, errors.SessionStoreError("Failed to store account").WithError(err)
	}

	identity, err := a.startSession(ctx, account)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Success: true, Identity: identity}, nil
}

func (a *jwtAuthenticator) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	allowed, remaining, retryAfter, err := a.limiter.Check(ctx, req.Email)
	if err != nil {
		return nil, errors.SessionStoreError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.AuthResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	account, err := a.accounts.FindByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return &models.AuthResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	identity, err := a.startSession(ctx, account)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Success: true, Identity: identity}, nil
}

func (a *jwtAuthenticator) startSession(ctx context.Context, account *models.Account) (*models.Identity, error) {

	claims := &models.Claims{
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(a.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	identity := &models.Identity{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Token: tokenString,
	}

	if err := a.sessions.Save(ctx, identity, a.ttl); err != nil {
		return nil, errors.SessionStoreError("Failed to store session").WithError(err)
	}

	return identity, nil
}

func (a *jwtAuthenticator) Logout(ctx context.Context, token string) error {

	if err := a.sessions.Delete(ctx, token); err != nil {
		return errors.SessionStoreError("Failed to delete session").WithError(err)
	}

	return nil
}

func (a *jwtAuthenticator) Authenticate(ctx context.Context, token string) (*models.Identity, error) {

	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}

		return a.jwtKey, nil
	})

	if err != nil || !parsed.Valid {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	// session lookup makes logout effective before token expiry
	return findSession(ctx, a.sessions, token)
}

func findSession(ctx context.Context, sessions repository.SessionRepository, token string) (*models.Identity, error) {

	identity, err := sessions.Find(ctx, token)
	if err != nil {
		if stderrors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.UnauthorizedError("Your session has expired. Please log in again.")
		}

		return nil, errors.SessionStoreError("Failed to read session").WithError(err)
	}

	return identity, nil
}

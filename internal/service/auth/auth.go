package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth/tokenmanager"
)

const (
	AccessCookieName  = "token"
	RefreshCookieName = "refreshToken"
)

// Real bcrypt hash that matches no password
// Login compares against it when the username is unknown, so both failure
// paths cost one bcrypt comparison and share the same outward error
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type UserRepo interface {
	// Has to return apperrors.ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, username string, hashedPassword string) (models.User, error)

	// Has to return apperrors.ErrUserNotFound if user not found
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type AuthService struct {
	tokens   *tokenmanager.TokenManager
	hasher   PasswordHasher
	userRepo UserRepo
}

func NewService(tokens *tokenmanager.TokenManager, hasher PasswordHasher, userRepo UserRepo) (*AuthService, error) {
	if tokens == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	if hasher == nil {
		hasher = DefaultHasher
	}

	return &AuthService{
		tokens:   tokens,
		hasher:   hasher,
		userRepo: userRepo,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, username string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, username, hash)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (models.User, models.TokenPair, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		_ = s.hasher.Compare(dummyHash, password)
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return user, pair, nil
}

// Mint a new access token for a valid refresh token
// The refresh token itself stays as is: it is not rotated and stays valid
// until its own expiry
func (s *AuthService) RefreshAccess(refresh string) (models.IssuedToken, error) {
	user, err := s.tokens.ParseRefresh(refresh)
	if err != nil {
		return models.IssuedToken{}, err
	}

	return s.tokens.IssueAccess(user)
}

// Verify access token and return the identity encoded in it
func (s *AuthService) VerifyAccess(access string) (models.User, error) {
	return s.tokens.ParseAccess(access)
}

func (s *AuthService) ReadAccess(r *http.Request) (string, error) {
	cookie, err := r.Cookie(AccessCookieName)
	if err != nil {
		return "", fmt.Errorf("no access token cookie: %w", err)
	}
	return cookie.Value, nil
}

func (s *AuthService) ReadRefresh(r *http.Request) (string, error) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", fmt.Errorf("no refresh token cookie: %w", err)
	}
	return cookie.Value, nil
}

// Set both auth cookies on login
func (s *AuthService) SetAuthCookies(w http.ResponseWriter, pair models.TokenPair) {
	s.SetAccessCookie(w, pair.Access)
	http.SetCookie(w, tokenCookie(RefreshCookieName, pair.Refresh))
}

func (s *AuthService) SetAccessCookie(w http.ResponseWriter, access models.IssuedToken) {
	http.SetCookie(w, tokenCookie(AccessCookieName, access))
}

// Expire both cookies
// Outstanding tokens stay cryptographically valid until natural expiry:
// there is no server side revocation
func (s *AuthService) ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func tokenCookie(name string, token models.IssuedToken) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultSigningMethod   = "HS256"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret to sign access tokens
	// Required to be set
	AccessSecret string

	// Secret to sign refresh tokens
	// Required to be set and must differ from AccessSecret, so leaking one
	// secret doesn't compromise the other token class
	RefreshSecret string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issues and verifies signed identity tokens
// Tokens are self contained: nothing is persisted, validity is decided by
// signature and expiry alone
type TokenManager struct {
	accessKey  string
	refreshKey string

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets must not be empty")
	}

	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		accessKey:  cfg.AccessSecret,
		refreshKey: cfg.RefreshSecret,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

func (m *TokenManager) IssueAccess(user models.User) (models.IssuedToken, error) {
	return m.issue(user, m.accessKey, m.accessTTL)
}

func (m *TokenManager) IssueRefresh(user models.User) (models.IssuedToken, error) {
	return m.issue(user, m.refreshKey, m.refreshTTL)
}

func (m *TokenManager) IssuePair(user models.User) (models.TokenPair, error) {
	access, err := m.IssueAccess(user)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := m.IssueRefresh(user)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Parse and validate access token
// Returns the identity encoded in the token: the store is not consulted
func (m *TokenManager) ParseAccess(value string) (models.User, error) {
	return m.parse(value, m.accessKey)
}

// Parse and validate refresh token
func (m *TokenManager) ParseRefresh(value string) (models.User, error) {
	return m.parse(value, m.refreshKey)
}

func (m *TokenManager) issue(user models.User, key string, ttl time.Duration) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID:   user.ID,
			Username: user.Username,
		},
	)

	signed, err := token.SignedString([]byte(key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

func (m *TokenManager) parse(value string, key string) (models.User, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)

	switch {
	case err == nil:
		return models.User{ID: claims.UserID, Username: claims.Username}, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrTokenExpired, err)
	default:
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrTokenInvalid, err)
	}
}

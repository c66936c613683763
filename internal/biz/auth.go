package biz

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"link-catalog/internal/conf"
	"link-catalog/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultSessionTTL applies when auth.session_ttl is unset.
const DefaultSessionTTL = time.Hour

// Session is an issued administrator session.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

// AuthUsecase issues and checks administrator sessions. A session is a signed
// token naming a session id, and the id must still be valid in the store.
type AuthUsecase struct {
	username   string
	password   string
	signingKey []byte
	ttl        time.Duration
	sessions   domain.SessionRepository
	log        *log.Helper
	now        func() time.Time
}

// NewAuthUsecase creates the usecase. An empty signing key is replaced with a
// random one, which invalidates all sessions on restart.
func NewAuthUsecase(c *conf.Auth, sessions domain.SessionRepository, logger log.Logger) (*AuthUsecase, error) {
	helper := log.NewHelper(log.With(logger, "module", "biz/auth"))
	if c == nil {
		c = &conf.Auth{}
	}

	key := []byte(c.SigningKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		helper.Warn("auth.signing_key is empty, using a random key")
	}
	if c.Password == "" {
		helper.Warn("auth.password is empty, administrator login is disabled")
	}

	ttl := c.SessionTtl.AsDuration()
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &AuthUsecase{
		username:   c.Username,
		password:   c.Password,
		signingKey: key,
		ttl:        ttl,
		sessions:   sessions,
		log:        helper,
		now:        time.Now,
	}, nil
}

// Login checks the credentials and opens a session.
func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (*Session, error) {
	if !uc.credentialsMatch(username, password) {
		uc.log.WithContext(ctx).Warnf("failed login for %q", username)
		return nil, domain.ErrUnauthorized
	}

	id := uuid.NewString()
	if err := uc.sessions.Create(ctx, id, uc.ttl); err != nil {
		return nil, err
	}

	now := uc.now()
	expiresAt := now.Add(uc.ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString(uc.signingKey)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	uc.log.WithContext(ctx).Infof("administrator %q logged in", username)
	return &Session{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize returns the session id of a valid token, or ErrUnauthorized.
func (uc *AuthUsecase) Authorize(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, uc.keyFunc, jwt.WithValidMethods([]string{"HS256"})); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	valid, err := uc.sessions.Valid(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", fmt.Errorf("%w: session revoked or expired", domain.ErrUnauthorized)
	}
	return claims.ID, nil
}

// Logout revokes the session named by token. Tokens with a bad signature are ignored.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, uc.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || claims.ID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, claims.ID)
}

// SessionTTL is how long a new session lasts.
func (uc *AuthUsecase) SessionTTL() time.Duration {
	return uc.ttl
}

func (uc *AuthUsecase) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return uc.signingKey, nil
}

func (uc *AuthUsecase) credentialsMatch(username, password string) bool {
	if uc.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.password)) == 1
	return userOK && passOK
}

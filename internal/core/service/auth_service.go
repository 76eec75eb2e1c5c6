package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// dummyHash is compared against when the email is unknown or the user has no
// password, so that every failure path spends the same bcrypt work. A match
// against it never authenticates.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fichedesk-timing-equaliser"), bcrypt.DefaultCost)

// sessionClaims is the JWT payload. The user travels in the token sanitized.
type sessionClaims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements login and session token handling.
type AuthService struct {
	store     ports.Store
	jwtSecret []byte
	ttl       time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(store ports.Store, jwtSecret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

// Login verifies the credentials and issues a session token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("login: load store: %w", err)
	}

	user, found := snap.FindUserByEmail(email)
	hasPassword := found && user.PasswordHash != ""
	hash := dummyHash
	if hasPassword {
		hash = []byte(user.PasswordHash)
	}
	// bcrypt compares digests in constant time.
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !hasPassword {
		s.log.Debug().Bool("known_email", found).Bool("has_password", hasPassword).Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      user.Sanitized(),
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(s.ttl).Truncate(time.Second),
	}

	token, err := s.generateToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return token, session, nil
}

// ParseSession decodes and verifies a token. It never returns an error:
// absence of a valid session is reported as nil.
func (s *AuthService) ParseSession(token string) *domain.Session {
	if token == "" {
		return nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		if err != nil && !errors.Is(err, jwt.ErrTokenMalformed) {
			s.log.Debug().Err(err).Msg("session token rejected")
		}
		return nil
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil
	}

	session := &domain.Session{
		ID: claims.ID,
		User: domain.User{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return session
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := sessionClaims{
		Name:  session.User.Name,
		Email: session.User.Email,
		Role:  session.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.User.ID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

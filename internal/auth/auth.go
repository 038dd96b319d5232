package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"footy-tipping/internal/config"
	"footy-tipping/internal/service"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer       = "footy-tipping"
	adminSubject = "admin"
)

type Authenticator struct {
	pinHash []byte
	secret  []byte
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

func New(cfg *config.Config, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		pinHash: []byte(cfg.AdminPINHash),
		secret:  []byte(cfg.JWTSecret),
		ttl:     cfg.SessionTTL,
		logger:  logger,
		now:     time.Now,
	}
}

// HashPIN returns the bcrypt hash to put in ADMIN_PIN_HASH.
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("pin must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// SignIn exchanges the admin PIN for a signed session token.
func (a *Authenticator) SignIn(pin string) (*Session, error) {
	if err := bcrypt.CompareHashAndPassword(a.pinHash, []byte(pin)); err != nil {
		a.logger.Warn().Msg("sign-in rejected")
		return nil, service.ErrInvalidPIN
	}

	now := a.now()
	expires := now.Add(a.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    issuer,
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	a.logger.Info().Str("jti", claims.ID).Time("expires_at", expires).Msg("session issued")
	return &Session{Token: token, ExpiresAt: expires}, nil
}

// Verify checks a session token and returns its subject.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: session expired", service.ErrUnauthenticated)
		}
		return "", fmt.Errorf("%w: %v", service.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return "", service.ErrUnauthenticated
	}
	return claims.Subject, nil
}

type subjectKey struct{}

// Subject returns the authenticated subject stored by the interceptor.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok
}

// Interceptor rejects calls to the given procedures unless they carry a
// valid bearer token. Other procedures pass through untouched.
func (a *Authenticator) Interceptor(protected ...string) connect.UnaryInterceptorFunc {
	guarded := make(map[string]struct{}, len(protected))
	for _, p := range protected {
		guarded[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if _, ok := guarded[req.Spec().Procedure]; !ok {
				return next(ctx, req)
			}

			header := req.Header().Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, service.ErrUnauthenticated)
			}

			subject, err := a.Verify(token)
			if err != nil {
				a.logger.Debug().Err(err).Str("procedure", req.Spec().Procedure).Msg("token rejected")
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(context.WithValue(ctx, subjectKey{}, subject), req)
		}
	}
}

package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

const bearerWord = "Bearer"

var (
	ErrEncoding       = errors.New("failed to encode token")
	ErrExpiredToken   = errors.New("expired token")
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
)

type ErrorKind int

const (
	KindMalformed ErrorKind = iota
	KindBadSignature
	KindExpired
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindExpired:
		return ErrExpiredToken
	case KindBadSignature:
		return ErrBadSignature
	default:
		return ErrMalformedToken
	}
}

// VerificationError tells callers why a presented token was refused.
type VerificationError struct {
	Kind ErrorKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	}
	return e.Kind.sentinel().Error()
}

func (e *VerificationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

type Claims struct {
	UserID        string `json:"user_id"`
	UserRoles     string `json:"user_roles"`
	UserRateLimit int64  `json:"user_rate_limit"`
	jwt.RegisteredClaims
}

// Extraction is the outcome of reading a bearer credential: either Claims or Err is set.
type Extraction struct {
	Claims *Claims
	Err    error
}

func (e *Extraction) Valid() bool {
	return e != nil && e.Err == nil && e.Claims != nil
}

type (
	Manager interface {
		Issue(userID, userRoles string, userRateLimit int64) (string, int64, error)
		Verify(tokenString string) (*Claims, error)
		ExtractFromHeader(authorization string) *Extraction
	}
	manager struct {
		secret       []byte
		lifetime     time.Duration
		timeProvider func() time.Time
	}
	Option func(*manager)
)

func WithTimeProvider(timeProvider func() time.Time) Option {
	return func(m *manager) {
		if timeProvider != nil {
			m.timeProvider = timeProvider
		}
	}
}

func NewJwtManager(cfg *config.JWTConfig, opts ...Option) Manager {
	m := &manager{
		secret:       []byte(cfg.SecretKey),
		lifetime:     time.Duration(cfg.LifetimeHours) * time.Hour,
		timeProvider: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *manager) Issue(userID, userRoles string, userRateLimit int64) (string, int64, error) {
	issuedAt := m.timeProvider().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.lifetime)

	claims := &Claims{
		UserID:        userID,
		UserRoles:     userRoles,
		UserRateLimit: userRateLimit,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return tokenString, expiresAt.Unix(), nil
}

func (m *manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.timeProvider),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &VerificationError{Kind: KindMalformed}
	}
	return claims, nil
}

// ExtractFromHeader returns nil unless the header starts with the Bearer scheme.
func (m *manager) ExtractFromHeader(authorization string) *Extraction {
	authorization = strings.TrimSpace(authorization)
	fields := strings.Fields(authorization)
	if len(fields) == 0 || !strings.EqualFold(fields[0], bearerWord) {
		return nil
	}
	claims, err := m.Verify(strings.TrimSpace(authorization[len(fields[0]):]))
	return &Extraction{Claims: claims, Err: err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &VerificationError{Kind: KindExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return &VerificationError{Kind: KindBadSignature, Err: err}
	default:
		return &VerificationError{Kind: KindMalformed, Err: err}
	}
}

package token

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates access tokens from refresh tokens. The kind selects
// the signing secret and is also embedded in the signed payload as the
// "type" claim, so a validly-signed token of one kind can never be accepted
// where the other kind is expected.
type Kind string

const (
	// KindAccess is an exported constant or variable used by the authentication engine.
	KindAccess Kind = "access"
	// KindRefresh is an exported constant or variable used by the authentication engine.
	KindRefresh Kind = "refresh"
)

var (
	// ErrKindMismatch is returned by Parse when the embedded type claim
	// does not equal the expected kind.
	ErrKindMismatch = errors.New("token kind mismatch")
	// ErrEmptySubject is returned by Parse when the subject claim is
	// missing or empty.
	ErrEmptySubject = errors.New("token subject missing")
)

// Config defines a public type used by goIdentity APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Leeway        time.Duration
	Issuer        string

	// Now overrides the clock used for issuance and expiry validation.
	// Nil means time.Now. Intended for tests that need to simulate
	// clock advance past a TTL.
	Now func() time.Time
}

// Manager signs and verifies typed, expiring tokens. It is purely
// functional given its secrets and clock: no state is kept between calls
// and a Manager is safe for concurrent use.
type Manager struct {
	config Config
}

// Claims is the signed payload carried by both token kinds.
type Claims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager.
//
// NewManager may return an error when input validation fails. A built
// Manager does not mutate shared global state and can be used concurrently.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("hs256 requires access secret")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("hs256 requires refresh secret")
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &Manager{config: cfg}, nil
}

// Issue builds and signs a token of the given kind. The payload is
// {subject, optional email, type = kind, iat = now, exp = now + TTL(kind)}
// signed with HS256 under the secret associated with kind.
func (m *Manager) Issue(kind Kind, subject, email string) (string, error) {
	secret, ttl, err := m.kindParams(kind)
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := m.now()
	claims := Claims{
		Email:     email,
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// Parse verifies raw against the secret for the expected kind and returns
// its claims. It fails when the signature does not verify, the token is
// structurally malformed or expired, the embedded type claim does not
// equal kind, or the subject claim is missing.
func (m *Manager) Parse(raw string, kind Kind) (*Claims, error) {
	secret, _, err := m.kindParams(kind)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenType != string(kind) {
		return nil, ErrKindMismatch
	}
	if claims.Subject == "" {
		return nil, ErrEmptySubject
	}

	return claims, nil
}

func (m *Manager) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return m.config.AccessSecret, m.config.AccessTTL, nil
	case KindRefresh:
		return m.config.RefreshSecret, m.config.RefreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q", kind)
	}
}

func (m *Manager) now() time.Time {
	if m.config.Now != nil {
		return m.config.Now()
	}
	return time.Now()
}

package goIdentity

import (
	"bytes"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config defines a public type used by goIdentity APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token    TokenConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goIdentity APIs.
//
// Access and refresh tokens are signed with two independent secrets so that
// compromise of one secret cannot mint tokens of the other kind. Both
// secrets must be provided by the caller; there are no defaults.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	SigningMethod string // "hs256" (only supported method)
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Leeway        time.Duration
	Issuer        string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by goIdentity APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Cost int // bcrypt work factor; 0 selects the library default
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goIdentity APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goIdentity APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

const minSecretLength = 32

// DefaultConfig returns the baseline configuration: 30 minute access TTL,
// 7 day refresh TTL, HS256 signing, default bcrypt cost. It deliberately
// carries no signing secrets; Build fails until the caller supplies them.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			SigningMethod: "hs256",
			AccessTTL:     30 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
		Password: PasswordConfig{
			Cost: bcrypt.DefaultCost,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.AccessSecret = cloneBytes(cfg.Token.AccessSecret)
	out.Token.RefreshSecret = cloneBytes(cfg.Token.RefreshSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for structural and hardening errors.
// Validate is called by [Builder.Build]; calling it directly is useful for
// surfacing configuration problems before process wiring.
func (c *Config) Validate() error {
	// Token
	if c.Token.SigningMethod != "hs256" {
		return errors.New("unsupported token signing method")
	}
	if c.Token.AccessTTL <= 0 {
		return errors.New("Token AccessTTL must be > 0")
	}
	if c.Token.RefreshTTL <= 0 {
		return errors.New("Token RefreshTTL must be > 0")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2 minutes")
	}
	if len(c.Token.AccessSecret) < minSecretLength {
		return errors.New("Token AccessSecret must be at least 32 bytes")
	}
	if len(c.Token.RefreshSecret) < minSecretLength {
		return errors.New("Token RefreshSecret must be at least 32 bytes")
	}
	if bytes.Equal(c.Token.AccessSecret, c.Token.RefreshSecret) {
		return errors.New("Token AccessSecret and RefreshSecret must differ")
	}

	// Password
	if c.Password.Cost != 0 && (c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost) {
		return errors.New("Password Cost outside bcrypt bounds")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}

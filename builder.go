package goIdentity

import (
	"errors"
	"time"

	"github.com/MrEthical07/goIdentity/password"
	"github.com/MrEthical07/goIdentity/token"
)

// Builder defines a public type used by goIdentity APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	directory Directory
	auditSink AuditSink
	clock     func() time.Time

	built bool
}

// New returns a Builder seeded with [DefaultConfig]. The caller must
// provide a [Directory] and both signing secrets before Build succeeds.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder configuration. The config is cloned, so
// later mutation of cfg by the caller does not affect the built engine.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithDirectory sets the user-record store the engine authenticates against.
func (b *Builder) WithDirectory(d Directory) *Builder {
	b.directory = d
	return b
}

// WithAuditSink sets the sink that receives audit events when auditing is
// enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock overrides the clock used for token issuance and expiry checks.
// Nil keeps [time.Now]. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithMetricsEnabled toggles the metrics registry.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithAuditEnabled toggles audit event dispatch.
func (b *Builder) WithAuditEnabled(enabled bool) *Builder {
	b.config.Audit.Enabled = enabled
	return b
}

// Build validates the configuration and assembles an immutable [Engine].
// A builder can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.directory == nil {
		return nil, errors.New("directory required")
	}

	engine := &Engine{
		config:    cloneConfig(cfg),
		directory: b.directory,
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	ph, err := password.NewBcrypt(password.Config{
		Cost: cfg.Password.Cost,
	})
	if err != nil {
		return nil, err
	}
	engine.passwords = ph

	tm, err := token.NewManager(token.Config{
		AccessSecret:  cloneBytes(cfg.Token.AccessSecret),
		RefreshSecret: cloneBytes(cfg.Token.RefreshSecret),
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
		Leeway:        cfg.Token.Leeway,
		Issuer:        cfg.Token.Issuer,
		Now:           b.clock,
	})
	if err != nil {
		return nil, err
	}
	engine.tokens = tm

	b.built = true

	return engine, nil
}

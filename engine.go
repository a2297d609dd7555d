package goIdentity

import (
	"fmt"

	"github.com/MrEthical07/goIdentity/password"
	"github.com/MrEthical07/goIdentity/token"
)

// Engine defines a public type used by goIdentity APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	tokens    *token.Manager
	passwords *password.Bcrypt
	directory Directory
	audit     *auditDispatcher
	metrics   *Metrics
}

// Close drains and stops the audit dispatcher. It is safe to call on a nil
// engine and safe to call more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were dropped because the
// dispatch queue was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) ready() bool {
	return e != nil && e.tokens != nil && e.passwords != nil && e.directory != nil
}

// issueTokenPair mints an access and a refresh token bound to user's id and
// email. Both kinds carry the same subject; each is signed under its own
// secret.
func (e *Engine) issueTokenPair(user *User) (*TokenPair, error) {
	access, err := e.tokens.Issue(token.KindAccess, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := e.tokens.Issue(token.KindRefresh, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

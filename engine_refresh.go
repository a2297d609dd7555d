package goIdentity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrEthical07/goIdentity/token"
)

// Refresh verifies refreshToken against the refresh secret and mints a new
// access token for its subject. The presented refresh token is echoed back
// unchanged; refresh tokens are not rotated in this design.
//
// Every rejection is [ErrInvalidToken]: a bad signature, an expired or
// wrong-kind token, a malformed subject, and a subject whose account is
// gone or disabled are deliberately indistinguishable to callers.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, e.refreshInvalid(ctx, "", "parse")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, e.refreshInvalid(ctx, "", "malformed_subject")
	}

	user, err := e.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, e.refreshInvalid(ctx, claims.Subject, "unknown_subject")
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if !user.IsActive {
		return nil, e.refreshInvalid(ctx, user.ID, "account_inactive")
	}

	access, err := e.tokens.Issue(token.KindAccess, user.ID, user.Email)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, user.ID, err, nil)
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefreshSuccess, true, user.ID, nil, nil)

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (e *Engine) refreshInvalid(ctx context.Context, userID, reason string) error {
	e.metricInc(MetricRefreshFailure)
	e.emitAudit(ctx, auditEventRefreshInvalid, false, userID, ErrInvalidToken, func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	})
	return ErrInvalidToken
}

// Package quota enforces free-tier daily session limits and premium-only
// feature gating at interview start.
package quota

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mockmate/mockmate/internal/store"
)

// DefaultDailyCap is the free-tier daily session limit.
const DefaultDailyCap = 5

// DefaultQuestionLimit is the only question limit a free-tier user may
// request. Anything else is a premium entitlement, not a silent downgrade.
const DefaultQuestionLimit = 5

// ErrQuotaExceeded means the free-tier daily cap was already reached.
var ErrQuotaExceeded = errors.New("daily interview quota exceeded")

// ErrPremiumRequired means a free-tier user requested a premium-only
// configuration (custom question limit or follow-up mode).
var ErrPremiumRequired = errors.New("premium subscription required")

// Gate authorizes session starts. It exclusively owns the daily counter;
// the session engine never touches it outside Authorize.
type Gate struct {
	users    store.UserRepo
	dailyCap int
}

// NewGate builds a Gate. dailyCap <= 0 falls back to DefaultDailyCap.
func NewGate(users store.UserRepo, dailyCap int) *Gate {
	if dailyCap <= 0 {
		dailyCap = DefaultDailyCap
	}
	return &Gate{users: users, dailyCap: dailyCap}
}

// Authorize decides whether user may start a session with the requested
// configuration. For free-tier users the entitlement check happens before
// the counter is touched, and the counter bump is a single atomic
// compare-and-increment, so concurrent starts cannot push the counter past
// the cap and a rejection never consumes quota.
//
// On success the returned release func refunds the consumed slot; the
// caller invokes it when the start fails after authorization, so an oracle
// outage never burns quota without producing a session. For premium users
// (nothing charged) release is a no-op.
func (g *Gate) Authorize(ctx context.Context, user *store.User, questionLimit int, followUp bool) (func(context.Context), error) {
	noop := func(context.Context) {}

	if user.Subscription == store.SubscriptionPremium {
		return noop, nil
	}

	if questionLimit != DefaultQuestionLimit || followUp {
		return nil, ErrPremiumRequired
	}

	ok, err := g.users.IncrementDailyCount(ctx, user.ID, g.dailyCap)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}

	userID := user.ID
	return func(ctx context.Context) {
		if err := g.users.DecrementDailyCount(ctx, userID); err != nil {
			log.Printf("quota refund failed for user %d: %v", userID, err)
		}
	}, nil
}

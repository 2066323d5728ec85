package quota

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mockmate/mockmate/internal/store"
)

// Sweep is the daily batch operation: it resets free-tier counters and
// downgrades lapsed cancelled subscriptions. It owns no logic of its own;
// it only calls the same store primitives the interactive path uses.
// Scheduling (a midnight cron) is the host's concern.
type Sweep struct {
	users store.UserRepo
}

// NewSweep builds a Sweep over the given user repo.
func NewSweep(users store.UserRepo) *Sweep {
	return &Sweep{users: users}
}

// Run performs one sweep pass.
func (s *Sweep) Run(ctx context.Context) error {
	reset, err := s.users.ResetDailyCounts(ctx)
	if err != nil {
		return fmt.Errorf("reset daily counts: %w", err)
	}
	log.Printf("quota sweep: reset daily counter for %d users", reset)

	downgraded, err := s.users.DowngradeExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("downgrade expired subscriptions: %w", err)
	}
	log.Printf("quota sweep: downgraded %d expired subscriptions", downgraded)

	return nil
}

package store

import (
	"context"
	"time"
)

// SessionRepo persists interview sessions and their turns. The session is
// the unit of consistency: turns are always loaded and saved through it.
type SessionRepo interface {
	// CreateWithTurn inserts a new session and its first turn atomically.
	CreateWithTurn(ctx context.Context, sess *Session, first *Turn) error

	// ByID loads a session with its turns ordered by sequence number.
	ByID(ctx context.Context, id string) (*Session, error)

	// AppendTurn inserts one more turn for an existing session.
	AppendTurn(ctx context.Context, turn *Turn) error

	// CompleteTurn attaches an answer and its evaluation to a turn.
	// The answer fields are written in a single update.
	CompleteTurn(ctx context.Context, turn *Turn) error

	// Finish writes a session's terminal state (status, total score,
	// category scores, end timestamp).
	Finish(ctx context.Context, sess *Session) error

	// RecentByUser returns the user's sessions newest-first. status may be
	// empty to match any status.
	RecentByUser(ctx context.Context, userID uint, status string, limit, offset int) ([]Session, error)

	// CountByUser counts the user's sessions, optionally filtered by status.
	CountByUser(ctx context.Context, userID uint, status string) (int64, error)

	// CountByUserSince counts the user's sessions started at or after the
	// given time. Used for today's-count reporting.
	CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error)

	// ScoreAggregates computes average/highest/lowest total score over the
	// user's completed sessions. All fields are nil when none exist.
	ScoreAggregates(ctx context.Context, userID uint) (*ScoreAggregates, error)

	// ScoresGroupedBy aggregates completed-session scores grouped by the
	// given session column ("topic" or "difficulty").
	ScoresGroupedBy(ctx context.Context, userID uint, column string) ([]GroupedScore, error)
}

// ScoreAggregates summarizes a user's completed-session scores.
type ScoreAggregates struct {
	Average *float64
	Highest *int
	Lowest  *int
}

// GroupedScore is one row of a per-topic or per-difficulty aggregation.
type GroupedScore struct {
	Label   string
	Average float64
	Count   int64
}

// UserRepo persists accounts and the quota counter primitives.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	ByID(ctx context.Context, id uint) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)

	// IncrementDailyCount atomically bumps the user's daily interview
	// counter if and only if it is below cap. Returns false when the
	// counter was already at the cap (no write happened).
	IncrementDailyCount(ctx context.Context, userID uint, cap int) (bool, error)

	// DecrementDailyCount refunds one consumed daily slot. Never drops the
	// counter below zero.
	DecrementDailyCount(ctx context.Context, userID uint) error

	// ResetDailyCounts zeroes the daily counter for all free-tier users.
	// Returns the number of rows touched.
	ResetDailyCounts(ctx context.Context) (int64, error)

	// DowngradeExpired moves cancelled premium users whose subscription has
	// lapsed back to the free tier. Returns the number of rows touched.
	DowngradeExpired(ctx context.Context, now time.Time) (int64, error)
}

// OracleRequestData captures one oracle call for the audit log.
type OracleRequestData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// OracleLogRepo appends oracle request audit rows.
type OracleLogRepo interface {
	Append(ctx context.Context, data OracleRequestData) error
}

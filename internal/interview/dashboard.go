package interview

import (
	"context"
	"time"

	"github.com/mockmate/mockmate/internal/store"
)

// Score thresholds for the strength/weakness classification: a topic with
// an average of 7 or above is a strength, 5 or below a weakness.
const (
	strongScoreFloor = 7
	weakScoreCeiling = 5
)

// DashboardStats is the headline per-user numbers. Score fields are nil
// until at least one session has completed.
type DashboardStats struct {
	TotalInterviews     int64
	CompletedInterviews int64
	AverageScore        *int
	HighestScore        *int
	LowestScore         *int
	ThisMonthCount      int64
}

// DashboardStats aggregates the caller's interview history.
func (e *Engine) DashboardStats(ctx context.Context, userID uint) (*DashboardStats, error) {
	total, err := e.sessions.CountByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	completed, err := e.sessions.CountByUser(ctx, userID, store.StatusCompleted)
	if err != nil {
		return nil, err
	}

	agg, err := e.sessions.ScoreAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := e.sessions.CountByUserSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalInterviews:     total,
		CompletedInterviews: completed,
		HighestScore:        agg.Highest,
		LowestScore:         agg.Lowest,
		ThisMonthCount:      thisMonth,
	}
	if agg.Average != nil {
		avg := int(*agg.Average)
		stats.AverageScore = &avg
	}
	return stats, nil
}

// TrendPoint is one completed session on the score-over-time chart.
type TrendPoint struct {
	SessionID  string
	Score      int
	Topic      Topic
	Difficulty Difficulty
	Date       time.Time
}

// ScoreTrend returns the caller's last limit completed sessions in
// chronological order, oldest first, for charting.
func (e *Engine) ScoreTrend(ctx context.Context, userID uint, limit int) ([]TrendPoint, error) {
	sessions, err := e.sessions.RecentByUser(ctx, userID, store.StatusCompleted, limit, 0)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, len(sessions))
	// RecentByUser hands back newest-first; the chart wants oldest-first.
	for i := len(sessions) - 1; i >= 0; i-- {
		sess := &sessions[i]
		points = append(points, TrendPoint{
			SessionID:  sess.ID,
			Score:      deref0(sess.TotalScore),
			Topic:      Topic(sess.Topic),
			Difficulty: Difficulty(sess.Difficulty),
			Date:       sess.StartedAt,
		})
	}
	return points, nil
}

// GroupStat is the per-topic or per-difficulty aggregate row. Average is
// truncated to the same integer scale as turn scores.
type GroupStat struct {
	Label   string
	Average int
	Count   int64
}

// CategoryAnalysis classifies the caller's per-topic and per-difficulty
// performance. Strengths and weaknesses carry topic display names.
type CategoryAnalysis struct {
	ByTopic      []GroupStat
	ByDifficulty []GroupStat
	Strengths    []string
	Weaknesses   []string
}

// CategoryAnalysis aggregates completed sessions by topic and difficulty.
func (e *Engine) CategoryAnalysis(ctx context.Context, userID uint) (*CategoryAnalysis, error) {
	byTopic, err := e.sessions.ScoresGroupedBy(ctx, userID, "topic")
	if err != nil {
		return nil, err
	}
	byDifficulty, err := e.sessions.ScoresGroupedBy(ctx, userID, "difficulty")
	if err != nil {
		return nil, err
	}

	analysis := &CategoryAnalysis{
		ByTopic:      make([]GroupStat, 0, len(byTopic)),
		ByDifficulty: make([]GroupStat, 0, len(byDifficulty)),
		Strengths:    []string{},
		Weaknesses:   []string{},
	}

	for _, row := range byTopic {
		stat := groupStatOf(row)
		analysis.ByTopic = append(analysis.ByTopic, stat)

		name := Topic(row.Label).Description()
		if stat.Average >= strongScoreFloor {
			analysis.Strengths = append(analysis.Strengths, name)
		} else if stat.Average <= weakScoreCeiling {
			analysis.Weaknesses = append(analysis.Weaknesses, name)
		}
	}
	for _, row := range byDifficulty {
		analysis.ByDifficulty = append(analysis.ByDifficulty, groupStatOf(row))
	}

	return analysis, nil
}

// RecentCompleted returns the caller's last limit completed sessions,
// newest first, for the dashboard's recent-interviews list.
func (e *Engine) RecentCompleted(ctx context.Context, userID uint, limit int) ([]store.Session, error) {
	return e.sessions.RecentByUser(ctx, userID, store.StatusCompleted, limit, 0)
}

func groupStatOf(row store.GroupedScore) GroupStat {
	return GroupStat{
		Label:   row.Label,
		Average: int(row.Average),
		Count:   row.Count,
	}
}

func deref0(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

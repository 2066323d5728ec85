package interview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mockmate/mockmate/internal/store"
)

// seedCompleted plants a finished session directly in the store fake.
func seedCompleted(sessions *memSessions, userID uint, topic Topic, difficulty Difficulty, score int, startedAt time.Time) {
	id := fmt.Sprintf("sess-%d", len(sessions.sessions)+1)
	ended := startedAt.Add(20 * time.Minute)
	sessions.sessions[id] = &store.Session{
		ID:         id,
		UserID:     userID,
		Topic:      string(topic),
		Difficulty: string(difficulty),
		Status:     store.StatusCompleted,
		TotalScore: &score,
		StartedAt:  startedAt,
		EndedAt:    &ended,
	}
}

func seedInProgress(sessions *memSessions, userID uint, startedAt time.Time) {
	id := fmt.Sprintf("sess-%d", len(sessions.sessions)+1)
	sessions.sessions[id] = &store.Session{
		ID:         id,
		UserID:     userID,
		Topic:      string(TopicBackend),
		Difficulty: string(DifficultyJunior),
		Status:     store.StatusInProgress,
		StartedAt:  startedAt,
	}
}

func TestDashboardStats(t *testing.T) {
	e, sessions, _ := newTestEngine(&scriptedOracle{})
	now := time.Now()

	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 8, now.Add(-2*time.Hour))
	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 5, now.Add(-time.Hour))
	seedInProgress(sessions, freeUserID, now)
	// another user's history must not bleed in
	seedCompleted(sessions, premiumUserID, TopicFrontend, DifficultySenior, 10, now)

	stats, err := e.DashboardStats(context.Background(), freeUserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalInterviews != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalInterviews)
	}
	if stats.CompletedInterviews != 2 {
		t.Fatalf("completed = %d, want 2", stats.CompletedInterviews)
	}
	// (8+5)/2 = 6.5, truncated
	if stats.AverageScore == nil || *stats.AverageScore != 6 {
		t.Fatalf("average = %v, want 6", stats.AverageScore)
	}
	if stats.HighestScore == nil || *stats.HighestScore != 8 {
		t.Fatalf("highest = %v, want 8", stats.HighestScore)
	}
	if stats.LowestScore == nil || *stats.LowestScore != 5 {
		t.Fatalf("lowest = %v, want 5", stats.LowestScore)
	}
	if stats.ThisMonthCount < 1 {
		t.Fatalf("this month = %d, want at least the session started now", stats.ThisMonthCount)
	}
}

func TestDashboardStats_NoCompletedSessions(t *testing.T) {
	e, sessions, _ := newTestEngine(&scriptedOracle{})
	seedInProgress(sessions, freeUserID, time.Now())

	stats, err := e.DashboardStats(context.Background(), freeUserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalInterviews != 1 || stats.CompletedInterviews != 0 {
		t.Fatalf("counts = %d/%d, want 1/0", stats.TotalInterviews, stats.CompletedInterviews)
	}
	if stats.AverageScore != nil || stats.HighestScore != nil || stats.LowestScore != nil {
		t.Fatalf("score fields = %v/%v/%v, want all nil without completed sessions",
			stats.AverageScore, stats.HighestScore, stats.LowestScore)
	}
}

func TestScoreTrend_OldestFirstWithinLimit(t *testing.T) {
	e, sessions, _ := newTestEngine(&scriptedOracle{})
	base := time.Now().Add(-24 * time.Hour)

	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 4, base)
	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 6, base.Add(time.Hour))
	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 8, base.Add(2*time.Hour))

	points, err := e.ScoreTrend(context.Background(), freeUserID, 2)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}

	// limit keeps the two newest, chart order is oldest first
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Score != 6 || points[1].Score != 8 {
		t.Fatalf("scores = %d,%d, want 6,8", points[0].Score, points[1].Score)
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Fatal("trend not in chronological order")
	}
}

func TestCategoryAnalysis(t *testing.T) {
	e, sessions, _ := newTestEngine(&scriptedOracle{})
	now := time.Now()

	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 8, now.Add(-4*time.Hour))
	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyMid, 8, now.Add(-3*time.Hour))
	seedCompleted(sessions, freeUserID, TopicFrontend, DifficultyJunior, 4, now.Add(-2*time.Hour))
	seedCompleted(sessions, freeUserID, TopicDevOps, DifficultyJunior, 6, now.Add(-time.Hour))

	analysis, err := e.CategoryAnalysis(context.Background(), freeUserID)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}

	byTopic := make(map[string]GroupStat, len(analysis.ByTopic))
	for _, stat := range analysis.ByTopic {
		byTopic[stat.Label] = stat
	}
	if stat := byTopic["BACKEND"]; stat.Average != 8 || stat.Count != 2 {
		t.Fatalf("BACKEND stat = %+v, want avg 8 count 2", stat)
	}
	if stat := byTopic["FRONTEND"]; stat.Average != 4 || stat.Count != 1 {
		t.Fatalf("FRONTEND stat = %+v, want avg 4 count 1", stat)
	}

	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "백엔드" {
		t.Fatalf("strengths = %v, want the backend display name only", analysis.Strengths)
	}
	if len(analysis.Weaknesses) != 1 || analysis.Weaknesses[0] != "프론트엔드" {
		t.Fatalf("weaknesses = %v, want the frontend display name only", analysis.Weaknesses)
	}

	byDifficulty := make(map[string]GroupStat, len(analysis.ByDifficulty))
	for _, stat := range analysis.ByDifficulty {
		byDifficulty[stat.Label] = stat
	}
	// junior sessions: 8, 4, 6
	if stat := byDifficulty["JUNIOR"]; stat.Average != 6 || stat.Count != 3 {
		t.Fatalf("JUNIOR stat = %+v, want avg 6 count 3", stat)
	}
}

func TestCategoryAnalysis_EmptyHistory(t *testing.T) {
	e, _, _ := newTestEngine(&scriptedOracle{})

	analysis, err := e.CategoryAnalysis(context.Background(), freeUserID)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if analysis.Strengths == nil || analysis.Weaknesses == nil {
		t.Fatal("strength and weakness lists must be empty, not nil")
	}
	if len(analysis.ByTopic) != 0 || len(analysis.ByDifficulty) != 0 {
		t.Fatalf("aggregates = %d/%d rows, want none", len(analysis.ByTopic), len(analysis.ByDifficulty))
	}
}

func TestRecentCompleted(t *testing.T) {
	e, sessions, _ := newTestEngine(&scriptedOracle{})
	base := time.Now().Add(-time.Hour)

	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 5, base)
	seedCompleted(sessions, freeUserID, TopicBackend, DifficultyJunior, 7, base.Add(10*time.Minute))
	seedInProgress(sessions, freeUserID, base.Add(20*time.Minute))

	recent, err := e.RecentCompleted(context.Background(), freeUserID, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d sessions, want the 2 completed", len(recent))
	}
	if recent[0].TotalScore == nil || *recent[0].TotalScore != 7 {
		t.Fatalf("first recent score = %v, want the newest (7)", recent[0].TotalScore)
	}
}

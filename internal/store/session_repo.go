package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) CreateWithTurn(ctx context.Context, sess *Session, first *Turn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sess).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if err := tx.Create(first).Error; err != nil {
			return fmt.Errorf("create first turn: %w", err)
		}
		return nil
	})
}

func (r *sessionRepo) ByID(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := r.db.WithContext(ctx).
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &sess, nil
}

func (r *sessionRepo) AppendTurn(ctx context.Context, turn *Turn) error {
	if err := r.db.WithContext(ctx).Create(turn).Error; err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

func (r *sessionRepo) CompleteTurn(ctx context.Context, turn *Turn) error {
	res := r.db.WithContext(ctx).Model(&Turn{}).
		Where("id = ? AND answer IS NULL", turn.ID).
		Updates(map[string]any{
			"answer":              turn.Answer,
			"score":               turn.Score,
			"feedback":            turn.Feedback,
			"model_answer":        turn.ModelAnswer,
			"answer_time_seconds": turn.AnswerTimeSeconds,
			"answered_at":         turn.AnsweredAt,
		})
	if res.Error != nil {
		return fmt.Errorf("complete turn: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepo) Finish(ctx context.Context, sess *Session) error {
	res := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND status = ?", sess.ID, StatusInProgress).
		Updates(map[string]any{
			"status":          sess.Status,
			"total_score":     sess.TotalScore,
			"category_scores": sess.CategoryScores,
			"ended_at":        sess.EndedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("finish session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepo) RecentByUser(ctx context.Context, userID uint, status string, limit, offset int) ([]Session, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var sessions []Session
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) CountByUser(ctx context.Context, userID uint, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&Session{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *sessionRepo) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Session{}).
		Where("user_id = ? AND started_at >= ?", userID, since).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count sessions since: %w", err)
	}
	return n, nil
}

func (r *sessionRepo) ScoreAggregates(ctx context.Context, userID uint) (*ScoreAggregates, error) {
	var agg ScoreAggregates
	err := r.db.WithContext(ctx).Model(&Session{}).
		Select("AVG(total_score) AS average, MAX(total_score) AS highest, MIN(total_score) AS lowest").
		Where("user_id = ? AND status = ? AND total_score IS NOT NULL", userID, StatusCompleted).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}
	return &agg, nil
}

// groupColumns whitelists the columns ScoresGroupedBy may group on; the
// column name is interpolated into SQL.
var groupColumns = map[string]bool{"topic": true, "difficulty": true}

func (r *sessionRepo) ScoresGroupedBy(ctx context.Context, userID uint, column string) ([]GroupedScore, error) {
	if !groupColumns[column] {
		return nil, fmt.Errorf("unsupported grouping column %q", column)
	}

	var rows []GroupedScore
	err := r.db.WithContext(ctx).Model(&Session{}).
		Select(column+" AS label, AVG(total_score) AS average, COUNT(*) AS count").
		Where("user_id = ? AND status = ? AND total_score IS NOT NULL", userID, StatusCompleted).
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group scores by %s: %w", column, err)
	}
	return rows, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) ByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// IncrementDailyCount is the quota gate's serialization point: the guarded
// UPDATE makes the check-and-bump a single statement, so concurrent session
// starts by the same user cannot both pass at the cap.
func (r *userRepo) IncrementDailyCount(ctx context.Context, userID uint, cap int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND daily_interview_count < ?", userID, cap).
		UpdateColumn("daily_interview_count", gorm.Expr("daily_interview_count + 1"))
	if res.Error != nil {
		return false, fmt.Errorf("increment daily count: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// DecrementDailyCount compensates an increment whose session start failed
// afterwards. Guarded so a stray refund cannot push the counter negative.
func (r *userRepo) DecrementDailyCount(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND daily_interview_count > 0", userID).
		UpdateColumn("daily_interview_count", gorm.Expr("daily_interview_count - 1"))
	if res.Error != nil {
		return fmt.Errorf("decrement daily count: %w", res.Error)
	}
	return nil
}

func (r *userRepo) ResetDailyCounts(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("subscription = ? AND daily_interview_count > 0", SubscriptionFree).
		UpdateColumn("daily_interview_count", 0)
	if res.Error != nil {
		return 0, fmt.Errorf("reset daily counts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *userRepo) DowngradeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("subscription = ? AND subscription_cancelled = ? AND subscription_expires_at <= ?",
			SubscriptionPremium, true, now).
		Updates(map[string]any{
			"subscription":            SubscriptionFree,
			"subscription_expires_at": nil,
			"subscription_cancelled":  false,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("downgrade expired subscriptions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

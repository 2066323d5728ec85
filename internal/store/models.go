package store

import (
	"time"

	"gorm.io/datatypes"
)

// Subscription tiers.
const (
	SubscriptionFree    = "FREE"
	SubscriptionPremium = "PREMIUM"
)

// Session lifecycle states. Only these three are ever persisted.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// User is an account row. The quota gate owns DailyInterviewCount; no
// other component writes it.
type User struct {
	ID                    uint   `gorm:"primaryKey"`
	Email                 string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash          string `gorm:"size:255;not null"`
	Nickname              string `gorm:"size:50"`
	Subscription          string `gorm:"size:20;not null;default:'FREE'"`
	SubscriptionExpiresAt *time.Time
	SubscriptionCancelled bool `gorm:"not null;default:false"`
	DailyInterviewCount   int  `gorm:"not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Session is one interview attempt. It exclusively owns its ordered Turns;
// deleting a session cascades to them.
type Session struct {
	ID              string `gorm:"primaryKey;size:36"`
	UserID          uint   `gorm:"not null;index"`
	Topic           string `gorm:"size:20;not null"`
	CustomTopic     string `gorm:"size:100"`
	Difficulty      string `gorm:"size:20;not null"`
	QuestionLimit   int    `gorm:"not null"`
	FollowUpEnabled bool   `gorm:"not null"`
	Status          string `gorm:"size:20;not null;index"`
	TotalScore      *int
	CategoryScores  datatypes.JSON
	StartedAt       time.Time `gorm:"not null"`
	EndedAt         *time.Time

	User  User   `gorm:"foreignKey:UserID"`
	Turns []Turn `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// Turn is one question and, once submitted, its answer and evaluation.
// The five answer fields are set together in a single update or not at all.
type Turn struct {
	ID                string  `gorm:"primaryKey;size:36"`
	SessionID         string  `gorm:"not null;index;uniqueIndex:idx_turn_seq,priority:1"`
	Seq               int     `gorm:"not null;uniqueIndex:idx_turn_seq,priority:2"`
	Question          string  `gorm:"type:text;not null"`
	Category          string  `gorm:"size:100"`
	Answer            *string `gorm:"type:text"`
	Score             *int
	Feedback          *string `gorm:"type:text"`
	ModelAnswer       *string `gorm:"type:text"`
	AnswerTimeSeconds *int
	AnsweredAt        *time.Time
	CreatedAt         time.Time
}

// Answered reports whether this turn has a submitted answer.
func (t *Turn) Answered() bool {
	return t.Answer != nil
}

// Evaluated reports whether this turn's answer has a score attached.
func (t *Turn) Evaluated() bool {
	return t.Score != nil
}

// OracleRequestLog is one audit row per oracle call, written by the
// llm audit decorator.
type OracleRequestLog struct {
	ID           uint   `gorm:"primaryKey"`
	Model        string `gorm:"size:100"`
	Purpose      string `gorm:"size:30;index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
}

package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mockmate/mockmate/internal/quota"
	"github.com/mockmate/mockmate/internal/store"
)

// Canned evaluation for blank answers. The oracle is never consulted for
// an empty submission.
const (
	noAnswerFeedback    = "답변이 제출되지 않았습니다. 질문에 대한 답변을 작성해주세요."
	noAnswerModelAnswer = "답변을 제출하면 모범답안을 확인할 수 있습니다."
)

// Engine owns the interview session state machine. All session and turn
// writes in the system go through it; each mutating operation runs under
// the per-session lock.
type Engine struct {
	sessions store.SessionRepo
	users    store.UserRepo
	gate     *quota.Gate
	oracle   Oracle
	locks    *sessionLocks
}

// NewEngine wires the engine.
func NewEngine(sessions store.SessionRepo, users store.UserRepo, gate *quota.Gate, oracle Oracle) *Engine {
	return &Engine{
		sessions: sessions,
		users:    users,
		gate:     gate,
		oracle:   oracle,
		locks:    newSessionLocks(),
	}
}

// TurnView is the caller-facing shape of an open question.
type TurnView struct {
	ID       string
	Seq      int
	Question string
	Category string
}

func viewOf(t *store.Turn) TurnView {
	return TurnView{ID: t.ID, Seq: t.Seq, Question: t.Question, Category: t.Category}
}

// StartInput configures a new session.
type StartInput struct {
	Topic         Topic
	CustomTopic   string
	Difficulty    Difficulty
	QuestionLimit int
	FollowUp      bool
}

// StartResult is the outcome of Start: the new session and its first turn.
type StartResult struct {
	SessionID string
	Topic     Topic
	StartedAt time.Time
	First     TurnView
}

// Start authorizes the caller through the quota gate, asks the oracle for
// the opening question and creates the session with turn #1. A quota
// rejection aborts before any session row exists, and a failure after
// authorization refunds the consumed daily slot.
func (e *Engine) Start(ctx context.Context, userID uint, in StartInput) (*StartResult, error) {
	user, err := e.users.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	release, err := e.gate.Authorize(ctx, user, in.QuestionLimit, in.FollowUp)
	if err != nil {
		return nil, err
	}

	question, err := e.oracle.GenerateQuestion(ctx, QuestionInput{
		Topic:           in.Topic,
		CustomTopic:     in.CustomTopic,
		Difficulty:      in.Difficulty,
		FollowUpEnabled: in.FollowUp,
	})
	if err != nil {
		release(ctx)
		return nil, err
	}

	now := time.Now()
	sess := &store.Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		Topic:           string(in.Topic),
		CustomTopic:     in.CustomTopic,
		Difficulty:      string(in.Difficulty),
		QuestionLimit:   in.QuestionLimit,
		FollowUpEnabled: in.FollowUp,
		Status:          store.StatusInProgress,
		StartedAt:       now,
	}
	first := &store.Turn{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Seq:       1,
		Question:  question,
		Category:  in.Topic.DisplayName(in.CustomTopic),
		CreatedAt: now,
	}

	if err := e.sessions.CreateWithTurn(ctx, sess, first); err != nil {
		release(ctx)
		return nil, err
	}

	return &StartResult{
		SessionID: sess.ID,
		Topic:     in.Topic,
		StartedAt: now,
		First:     viewOf(first),
	}, nil
}

// AnswerResult is the outcome of SubmitAnswer: the evaluation of the
// submitted answer plus, when the session is still below its question
// limit, the next question. A nil Next signals the session is ready to end.
type AnswerResult struct {
	Evaluation Evaluation
	Next       *TurnView
}

// SubmitAnswer attaches an answer and its evaluation to the addressed
// question, then generates the next question unless the limit is reached.
// A blank answer short-circuits to a zero-score canned evaluation without
// consulting the oracle.
func (e *Engine) SubmitAnswer(ctx context.Context, userID uint, sessionID, questionID, answer string, elapsedSeconds int) (*AnswerResult, error) {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	sess, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != store.StatusInProgress {
		return nil, ErrAlreadyEnded
	}

	var turn *store.Turn
	for i := range sess.Turns {
		if sess.Turns[i].ID == questionID {
			turn = &sess.Turns[i]
			break
		}
	}
	if turn == nil {
		return nil, ErrQuestionNotFound
	}
	if turn.Answered() {
		return nil, ErrAnswerAlreadySubmitted
	}

	var ev Evaluation
	if strings.TrimSpace(answer) == "" {
		ev = Evaluation{Score: 0, Feedback: noAnswerFeedback, ModelAnswer: noAnswerModelAnswer}
	} else {
		ev, err = e.oracle.EvaluateAnswer(ctx, turn.Question, answer)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	turn.Answer = &answer
	turn.Score = &ev.Score
	turn.Feedback = &ev.Feedback
	turn.ModelAnswer = &ev.ModelAnswer
	turn.AnswerTimeSeconds = &elapsedSeconds
	turn.AnsweredAt = &now

	if err := e.sessions.CompleteTurn(ctx, turn); err != nil {
		return nil, err
	}

	result := &AnswerResult{Evaluation: ev}

	if len(sess.Turns) < sess.QuestionLimit {
		next, err := e.nextTurn(ctx, sess, turn.Question, answer)
		if err != nil {
			return nil, err
		}
		v := viewOf(next)
		result.Next = &v
	}

	return result, nil
}

// nextTurn asks the oracle for the next question and appends it.
func (e *Engine) nextTurn(ctx context.Context, sess *store.Session, prevQuestion, prevAnswer string) (*store.Turn, error) {
	question, err := e.oracle.GenerateQuestion(ctx, QuestionInput{
		Topic:            Topic(sess.Topic),
		CustomTopic:      sess.CustomTopic,
		Difficulty:       Difficulty(sess.Difficulty),
		PreviousQuestion: prevQuestion,
		PreviousAnswer:   prevAnswer,
		FollowUpEnabled:  sess.FollowUpEnabled,
		TurnCount:        len(sess.Turns),
	})
	if err != nil {
		return nil, err
	}

	turn := &store.Turn{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Seq:       len(sess.Turns) + 1,
		Question:  question,
		Category:  Topic(sess.Topic).DisplayName(sess.CustomTopic),
		CreatedAt: time.Now(),
	}
	if err := e.sessions.AppendTurn(ctx, turn); err != nil {
		return nil, err
	}
	sess.Turns = append(sess.Turns, *turn)
	return turn, nil
}

// EndResult is the outcome of End.
type EndResult struct {
	TotalScore int
	Summary    Summary
	EndedAt    time.Time
}

// End completes the session: the total score is the truncated mean of all
// evaluated turn scores (unanswered turns are excluded, not zeroed), and
// the oracle independently produces the holistic summary. The summary's
// own overall score never becomes the total.
func (e *Engine) End(ctx context.Context, userID uint, sessionID string) (*EndResult, error) {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	sess, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != store.StatusInProgress {
		return nil, ErrAlreadyEnded
	}

	summary, err := e.oracle.GenerateSummary(ctx, summaryInputOf(sess))
	if err != nil {
		return nil, err
	}

	total := meanScore(sess.Turns)
	now := time.Now()

	scoresJSON, err := json.Marshal(summary.CategoryScores)
	if err != nil {
		return nil, fmt.Errorf("marshal category scores: %w", err)
	}

	sess.Status = store.StatusCompleted
	sess.TotalScore = &total
	sess.CategoryScores = datatypes.JSON(scoresJSON)
	sess.EndedAt = &now

	if err := e.sessions.Finish(ctx, sess); err != nil {
		return nil, err
	}

	return &EndResult{TotalScore: total, Summary: summary, EndedAt: now}, nil
}

// Cancel marks the session CANCELLED. Terminal, like End, but with no
// oracle involvement and a zero total.
func (e *Engine) Cancel(ctx context.Context, userID uint, sessionID string) error {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	sess, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if sess.Status != store.StatusInProgress {
		return ErrAlreadyEnded
	}

	now := time.Now()
	zero := 0
	sess.Status = store.StatusCancelled
	sess.TotalScore = &zero
	sess.EndedAt = &now

	return e.sessions.Finish(ctx, sess)
}

// ResumeResult is the outcome of Resume: the turn the client should show
// next plus progress counters. Done reports that every slot is answered
// and the client should call End.
type ResumeResult struct {
	Current       TurnView
	AnsweredCount int
	QuestionLimit int
	Done          bool
}

// Resume reconstructs the client-visible position after a disconnect.
// Idempotent: repeated calls in the same state never create extra turns.
func (e *Engine) Resume(ctx context.Context, userID uint, sessionID string) (*ResumeResult, error) {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	sess, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != store.StatusInProgress {
		return nil, ErrAlreadyEnded
	}

	answered := 0
	var open *store.Turn
	for i := range sess.Turns {
		if sess.Turns[i].Answered() {
			answered++
		} else if open == nil {
			open = &sess.Turns[i]
		}
	}

	res := &ResumeResult{AnsweredCount: answered, QuestionLimit: sess.QuestionLimit}

	if open != nil {
		res.Current = viewOf(open)
		return res, nil
	}

	if len(sess.Turns) < sess.QuestionLimit {
		last := &sess.Turns[len(sess.Turns)-1]
		next, err := e.nextTurn(ctx, sess, last.Question, deref(last.Answer))
		if err != nil {
			return nil, err
		}
		res.Current = viewOf(next)
		return res, nil
	}

	// Every slot answered: hand back the last turn and signal End.
	last := &sess.Turns[len(sess.Turns)-1]
	res.Current = viewOf(last)
	res.Done = true
	return res, nil
}

// Detail loads a session with all its turns for the read-only detail view.
func (e *Engine) Detail(ctx context.Context, userID uint, sessionID string) (*store.Session, error) {
	return e.loadOwned(ctx, sessionID, userID)
}

// List returns the caller's sessions, newest first.
func (e *Engine) List(ctx context.Context, userID uint, status string, limit, offset int) ([]store.Session, int64, error) {
	sessions, err := e.sessions.RecentByUser(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := e.sessions.CountByUser(ctx, userID, status)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// TodayCount reports how many sessions the caller started since local
// midnight.
func (e *Engine) TodayCount(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return e.sessions.CountByUserSince(ctx, userID, midnight)
}

func (e *Engine) loadOwned(ctx context.Context, sessionID string, userID uint) (*store.Session, error) {
	sess, err := e.sessions.ByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}

func summaryInputOf(sess *store.Session) SummaryInput {
	topic := Topic(sess.Topic)
	in := SummaryInput{
		Topic:       topic,
		CustomTopic: sess.CustomTopic,
		Difficulty:  Difficulty(sess.Difficulty),
		Categories:  topic.Categories(),
	}
	for i := range sess.Turns {
		t := &sess.Turns[i]
		in.Transcript = append(in.Transcript, TranscriptTurn{
			Seq:      t.Seq,
			Question: t.Question,
			Answer:   deref(t.Answer),
			Score:    t.Score,
		})
	}
	return in
}

// meanScore is the truncated mean of evaluated turn scores; 0 when no turn
// has been evaluated.
func meanScore(turns []store.Turn) int {
	sum, n := 0, 0
	for i := range turns {
		if turns[i].Evaluated() {
			sum += *turns[i].Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

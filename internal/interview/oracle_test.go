package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mockmate/mockmate/internal/llm"
)

func newMockOracle(responses ...llm.MockResponse) (Oracle, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewOracle(mock, time.Second, DefaultParserDefaults()), mock
}

func TestOracle_GenerateQuestion(t *testing.T) {
	o, mock := newMockOracle(llm.MockResponse{Text: "  HTTP 메서드의 멱등성에 대해 설명해주세요.\n"})

	q, err := o.GenerateQuestion(context.Background(), QuestionInput{
		Topic:      TopicBackend,
		Difficulty: DifficultyJunior,
	})
	if err != nil {
		t.Fatalf("generate question: %v", err)
	}
	if q != "HTTP 메서드의 멱등성에 대해 설명해주세요." {
		t.Fatalf("question = %q", q)
	}

	req := mock.Calls[0]
	if !strings.Contains(req.System, "백엔드") {
		t.Fatal("system prompt missing topic display name")
	}
	if !strings.Contains(req.System, "주니어") {
		t.Fatal("system prompt missing difficulty label")
	}
}

func TestOracle_EvaluateAnswerParsesReply(t *testing.T) {
	o, mock := newMockOracle(llm.MockResponse{Text: "점수: 8\n피드백: 정확합니다.\n모범답안: 멱등성이란 같은 요청을 반복해도 결과가 같음을 뜻합니다."})

	ev, err := o.EvaluateAnswer(context.Background(), "멱등성이란?", "같은 요청 반복 시 결과 동일")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Score != 8 {
		t.Fatalf("score = %d, want 8", ev.Score)
	}
	if ev.Feedback != "정확합니다." {
		t.Fatalf("feedback = %q", ev.Feedback)
	}

	req := mock.Calls[0]
	if !strings.Contains(req.User, "멱등성이란?") {
		t.Fatal("user prompt missing the question")
	}
	if !strings.Contains(req.User, "같은 요청 반복 시 결과 동일") {
		t.Fatal("user prompt missing the answer")
	}
}

func TestOracle_GenerateSummaryUsesTopicCategories(t *testing.T) {
	o, mock := newMockOracle(llm.MockResponse{Text: strings.Join([]string{
		"=== 종합 평가 ===",
		"기본기가 좋습니다.",
		"=== 전체 점수 ===",
		"7",
		"=== 카테고리별 점수 ===",
		"CI/CD: 9",
	}, "\n")})

	in := SummaryInput{
		Topic:      TopicDevOps,
		Difficulty: DifficultyMid,
		Categories: TopicDevOps.Categories(),
		Transcript: []TranscriptTurn{{Seq: 1, Question: "q", Answer: "a"}},
	}
	sum, err := o.GenerateSummary(context.Background(), in)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.OverallScore != 7 {
		t.Fatalf("overall = %d, want 7", sum.OverallScore)
	}
	if sum.CategoryScores[0].Name != "CI/CD" || sum.CategoryScores[0].Score != 9 {
		t.Fatalf("first category = %+v", sum.CategoryScores[0])
	}

	if !strings.Contains(mock.Calls[0].System, "CI/CD") {
		t.Fatal("system prompt missing topic categories")
	}
}

func TestOracle_MapsProviderFailure(t *testing.T) {
	o, _ := newMockOracle(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	_, err := o.GenerateQuestion(context.Background(), QuestionInput{Topic: TopicBackend, Difficulty: DifficultyJunior})
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("err = %v, want ErrOracleUnavailable", err)
	}
}

func TestOracle_MalformedEvaluationDegrades(t *testing.T) {
	o, _ := newMockOracle(llm.MockResponse{Text: "자유 서술 피드백"})

	ev, err := o.EvaluateAnswer(context.Background(), "q", "a")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Score != 5 {
		t.Fatalf("score = %d, want default 5", ev.Score)
	}
	if ev.Feedback != "자유 서술 피드백" {
		t.Fatalf("feedback = %q", ev.Feedback)
	}
}

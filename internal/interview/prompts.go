package interview

import (
	"fmt"
	"strings"
)

// QuestionInput carries everything needed to prompt for the next question.
// PreviousQuestion/PreviousAnswer are empty on the cold start.
type QuestionInput struct {
	Topic            Topic
	CustomTopic      string
	Difficulty       Difficulty
	PreviousQuestion string
	PreviousAnswer   string
	FollowUpEnabled  bool
	TurnCount        int
}

func buildQuestionSystemPrompt(in QuestionInput) string {
	return fmt.Sprintf(
		"당신은 %s 분야의 기술 면접관입니다.\n"+
			"대상: %s 수준 (%s 경력)\n\n"+
			"규칙:\n"+
			"1. 질문은 한국어로 작성\n"+
			"2. 한 번에 하나의 질문만 생성\n"+
			"3. 실무에서 중요한 개념을 질문\n"+
			"4. 난이도에 맞는 깊이로 질문",
		in.Topic.DisplayName(in.CustomTopic),
		in.Difficulty.Label(),
		in.Difficulty.Experience(),
	)
}

func buildQuestionUserPrompt(in QuestionInput) string {
	if in.PreviousAnswer == "" && in.PreviousQuestion == "" {
		// Cold start: no prior answer to build on.
		return fmt.Sprintf(
			"면접을 시작합니다. %s 개발자 면접의 첫 번째 기술 질문을 해주세요. "+
				"질문은 오늘 가장 이슈된 문제와 연관지어 5개 이상 생각한 후에 무작위적으로 하나를 선택하여 시작하세요.",
			in.Topic.DisplayName(in.CustomTopic),
		)
	}

	if in.FollowUpEnabled {
		return fmt.Sprintf(
			"이전 질문: %s\n\n"+
				"지원자 답변: %s\n\n"+
				"위 답변을 참고하여 다음 질문을 해주세요.\n"+
				"- 답변이 부족했다면 관련된 심화 질문을 하거나\n"+
				"- 충분했다면 새로운 주제의 질문을 해주세요.",
			in.PreviousQuestion,
			in.PreviousAnswer,
		)
	}

	// Follow-up disabled: ask for an unrelated area, naming the prior
	// question so the oracle avoids repeating it, and supplying the running
	// turn count so it can vary topic breadth.
	return fmt.Sprintf(
		"이전 질문: %s\n\n"+
			"지금까지 %d개의 질문을 했습니다.\n"+
			"이전 질문과 겹치지 않는, 완전히 새로운 주제 영역의 질문을 해주세요. "+
			"이전 질문을 반복하거나 관련된 심화 질문을 하지 마세요.",
		in.PreviousQuestion,
		in.TurnCount,
	)
}

func buildEvaluationSystemPrompt() string {
	return "당신은 한국 테크 기업의 기술 면접 평가자입니다.\n\n" +
		"답변을 평가하고 반드시 아래 형식으로만 응답하세요:\n\n" +
		"점수: [1-10 사이 정수]\n" +
		"피드백: [답변의 좋은 점과 부족한 점을 구체적으로 설명]\n" +
		"모범답안: [이 질문에 대한 이상적인 답변 예시]\n\n" +
		"점수 기준:\n" +
		"- 1-3점: 핵심 개념 이해 부족\n" +
		"- 4-6점: 기본 개념 이해, 세부사항 부족\n" +
		"- 7-8점: 개념 이해 충분, 실무 적용 가능\n" +
		"- 9-10점: 깊은 이해 또는 실무 경험 반영"
}

func buildEvaluationUserPrompt(question, answer string) string {
	return fmt.Sprintf(
		"질문: %s\n\n지원자 답변: %s\n\n위 답변을 평가해주세요.",
		question, answer,
	)
}

// TranscriptTurn is one question/answer pair for the summary prompt.
type TranscriptTurn struct {
	Seq      int
	Question string
	Answer   string
	Score    *int
}

// SummaryInput carries the full transcript for the holistic assessment.
type SummaryInput struct {
	Topic       Topic
	CustomTopic string
	Difficulty  Difficulty
	Categories  []string
	Transcript  []TranscriptTurn
}

func buildSummarySystemPrompt(categories []string) string {
	var b strings.Builder
	b.WriteString("당신은 기술 면접 종합 평가자입니다.\n\n")
	b.WriteString("면접 내용을 분석하고 반드시 아래 형식으로만 응답하세요:\n\n")
	b.WriteString("=== 종합 평가 ===\n")
	b.WriteString("[면접 전체에 대한 종합적인 평가를 작성. 강점, 약점, 개선점, 학습 추천 포함]\n\n")
	b.WriteString("=== 전체 점수 ===\n")
	b.WriteString("[1-10 사이 정수]\n\n")
	b.WriteString("=== 카테고리별 점수 ===\n")

	for _, category := range categories {
		fmt.Fprintf(&b, "%s: [1-10 사이 정수]\n", category)
	}

	b.WriteString("\n점수 기준:\n")
	b.WriteString("- 1-3점: 기초 부족\n")
	b.WriteString("- 4-6점: 기본 이해\n")
	b.WriteString("- 7-8점: 충분한 역량\n")
	b.WriteString("- 9-10점: 우수한 역량")

	return b.String()
}

func buildSummaryUserPrompt(in SummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "면접 유형: %s\n", in.Topic.DisplayName(in.CustomTopic))
	fmt.Fprintf(&b, "난이도: %s (%s)\n", in.Difficulty.Label(), in.Difficulty.Experience())
	fmt.Fprintf(&b, "평가 카테고리: %s\n\n", strings.Join(in.Categories, ", "))
	b.WriteString("=== 면접 내용 ===\n\n")

	for _, t := range in.Transcript {
		fmt.Fprintf(&b, "Q%d: %s\n", t.Seq, t.Question)
		if t.Answer != "" {
			fmt.Fprintf(&b, "A: %s\n", t.Answer)
			if t.Score != nil {
				fmt.Fprintf(&b, "개별 점수: %d/10\n", *t.Score)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("위 면접 내용을 바탕으로 종합 평가와 카테고리별 점수를 작성해주세요.")
	return b.String()
}

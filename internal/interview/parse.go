package interview

import (
	"strings"
)

// Defaults fixes the parser's fallback scoring policy. Exposed as
// configuration because the neutral default is a product decision.
type Defaults struct {
	// Score used when a score line has no digits.
	Score int
	// Score used for categories the summary never mentions.
	CategoryScore int
}

// DefaultParserDefaults returns the production defaulting policy.
func DefaultParserDefaults() Defaults {
	return Defaults{Score: 5, CategoryScore: 5}
}

// ParseQuestion extracts the question from a raw question reply.
// The whole trimmed reply is the question.
func ParseQuestion(raw string) string {
	return strings.TrimSpace(raw)
}

// ParseEvaluation extracts a score/feedback/model-answer triple from a raw
// evaluation reply. It never fails: missing pieces degrade to defaults and
// an all-empty parse substitutes the entire reply as feedback. The returned
// bool reports whether the reply was well formed; callers use it for
// logging only.
func ParseEvaluation(raw string, d Defaults) (Evaluation, bool) {
	score := d.Score
	var feedback, modelAnswer []string

	// Section currently being appended to: "", "feedback" or "modelAnswer".
	section := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case hasLabel(line, "점수"):
			score = extractScore(stripLabel(line, "점수"), d.Score)
			section = ""
		case hasLabel(line, "피드백"):
			if rest := stripLabel(line, "피드백"); rest != "" {
				feedback = append(feedback, rest)
			}
			section = "feedback"
		case hasLabel(line, "모범답안"), hasLabel(line, "모범 답안"):
			rest := stripLabel(line, "모범답안")
			if rest == line {
				rest = stripLabel(line, "모범 답안")
			}
			if rest != "" {
				modelAnswer = append(modelAnswer, rest)
			}
			section = "modelAnswer"
		case line != "":
			switch section {
			case "feedback":
				feedback = append(feedback, line)
			case "modelAnswer":
				modelAnswer = append(modelAnswer, line)
			}
		}
	}

	ev := Evaluation{
		Score:       score,
		Feedback:    strings.Join(feedback, " "),
		ModelAnswer: strings.Join(modelAnswer, " "),
	}

	// Nothing recognizable: keep the whole reply so no information is lost.
	if ev.Feedback == "" && ev.ModelAnswer == "" {
		ev.Feedback = raw
		return ev, false
	}
	return ev, true
}

// Summary section headers, matched inside `===`-delimited lines.
const (
	headerAssessment = "종합 평가"
	headerOverall    = "전체 점수"
	headerCategories = "카테고리별 점수"
)

// ParseSummary extracts the holistic assessment from a raw summary reply.
// The result always has exactly one entry per expected category, in the
// caller-supplied order; unmentioned categories keep the default score.
func ParseSummary(raw string, categories []string, d Defaults) (Summary, bool) {
	var assessment []string
	overall := d.Score

	scores := make([]CategoryScore, len(categories))
	for i, c := range categories {
		scores[i] = CategoryScore{Name: c, Score: d.CategoryScore}
	}

	section := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if strings.Contains(line, "===") {
			switch {
			case strings.Contains(line, headerAssessment):
				section = "assessment"
			case strings.Contains(line, headerOverall):
				section = "overall"
			case strings.Contains(line, headerCategories):
				section = "categories"
			default:
				// Unknown delimiter line: ignore.
			}
			continue
		}
		if line == "" {
			continue
		}

		switch section {
		case "assessment":
			assessment = append(assessment, line)
		case "overall":
			overall = extractScore(line, d.Score)
			section = "" // the overall score is a single line
		case "categories":
			for i, c := range categories {
				if strings.HasPrefix(line, c) {
					scores[i].Score = extractScore(line, d.CategoryScore)
					break
				}
			}
		}
	}

	sum := Summary{
		Assessment:     strings.Join(assessment, "\n"),
		OverallScore:   overall,
		CategoryScores: scores,
	}

	if sum.Assessment == "" {
		sum.Assessment = raw
		return sum, false
	}
	return sum, true
}

// hasLabel reports whether line starts with label followed by a colon,
// tolerating a space before the colon.
func hasLabel(line, label string) bool {
	return strings.HasPrefix(line, label+":") || strings.HasPrefix(line, label+" :")
}

// stripLabel removes a leading "label:" or "label :" prefix. Returns the
// line unchanged when the prefix is absent.
func stripLabel(line, label string) string {
	for _, p := range []string{label + ":", label + " :"} {
		if strings.HasPrefix(line, p) {
			return strings.TrimSpace(line[len(p):])
		}
	}
	return line
}

// extractScore pulls the first run of digits out of line and clamps it to
// [1,10]. Lines with no digits fall back to def.
func extractScore(line string, def int) int {
	start := -1
	for i, r := range line {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return clampScore(line[start:i], def)
		}
	}
	if start >= 0 {
		return clampScore(line[start:], def)
	}
	return def
}

func clampScore(digits string, def int) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
		if n > 10 {
			return 10
		}
	}
	if n < 1 {
		return 1
	}
	return n
}

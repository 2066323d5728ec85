package interview

// Topic is the interview subject area.
type Topic string

const (
	TopicBackend   Topic = "BACKEND"
	TopicFrontend  Topic = "FRONTEND"
	TopicFullstack Topic = "FULLSTACK"
	TopicDevOps    Topic = "DEVOPS"
	TopicData      Topic = "DATA"
	TopicMobile    Topic = "MOBILE"
	TopicOther     Topic = "OTHER"
)

// topicInfo carries the constant data attached to each topic variant.
type topicInfo struct {
	description string
	categories  []string
}

var topics = map[Topic]topicInfo{
	TopicBackend: {
		description: "백엔드",
		categories: []string{
			"기본 지식",
			"설계/아키텍처",
			"데이터베이스",
			"문제 해결",
			"커뮤니케이션",
		},
	},
	TopicFrontend: {
		description: "프론트엔드",
		categories: []string{
			"기본 지식",
			"프레임워크",
			"UI/UX 이해",
			"성능 최적화",
			"커뮤니케이션",
		},
	},
	TopicFullstack: {
		description: "풀스택",
		categories: []string{
			"프론트엔드",
			"백엔드",
			"데이터베이스",
			"시스템 통합",
			"커뮤니케이션",
		},
	},
	TopicDevOps: {
		description: "데브옵스",
		categories: []string{
			"CI/CD",
			"클라우드/인프라",
			"컨테이너/오케스트레이션",
			"모니터링/로깅",
			"보안",
		},
	},
	TopicData: {
		description: "데이터 엔지니어링",
		categories: []string{
			"데이터 처리",
			"SQL/쿼리",
			"분산 시스템",
			"데이터 모델링",
			"커뮤니케이션",
		},
	},
	TopicMobile: {
		description: "모바일",
		categories: []string{
			"기본 지식",
			"UI/UX",
			"성능 최적화",
			"네이티브 API",
			"커뮤니케이션",
		},
	},
	TopicOther: {
		description: "기타",
		categories: []string{
			"기본 지식",
			"실무 역량",
			"문제 해결",
			"도구/기술",
			"커뮤니케이션",
		},
	},
}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	_, ok := topics[t]
	return ok
}

// Description returns the topic's display name.
func (t Topic) Description() string {
	return topics[t].description
}

// DisplayName returns the topic's display name, substituting the
// caller-supplied custom label for the OTHER catch-all.
func (t Topic) DisplayName(custom string) string {
	if t == TopicOther && custom != "" {
		return custom
	}
	return topics[t].description
}

// Categories returns the ordered evaluation category names for this topic.
func (t Topic) Categories() []string {
	return topics[t].categories
}

// Difficulty is the targeted seniority of the interview.
type Difficulty string

const (
	DifficultyJunior Difficulty = "JUNIOR"
	DifficultyMid    Difficulty = "MID"
	DifficultySenior Difficulty = "SENIOR"
)

type difficultyInfo struct {
	label      string
	experience string
}

var difficulties = map[Difficulty]difficultyInfo{
	DifficultyJunior: {label: "주니어", experience: "0-2년차"},
	DifficultyMid:    {label: "미드레벨", experience: "3-5년차"},
	DifficultySenior: {label: "시니어", experience: "6년차 이상"},
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	_, ok := difficulties[d]
	return ok
}

// Label returns the difficulty's display label.
func (d Difficulty) Label() string {
	return difficulties[d].label
}

// Experience returns the experience band this difficulty targets.
func (d Difficulty) Experience() string {
	return difficulties[d].experience
}

// Evaluation is the typed result of grading one answer.
type Evaluation struct {
	Score       int
	Feedback    string
	ModelAnswer string
}

// CategoryScore is one entry of the ordered per-category score list.
type CategoryScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Summary is the typed result of the holistic end-of-interview assessment.
// OverallScore is the oracle's own opinion; the session's total score is
// always computed from per-turn scores, never from this field.
type Summary struct {
	Assessment     string
	OverallScore   int
	CategoryScores []CategoryScore
}

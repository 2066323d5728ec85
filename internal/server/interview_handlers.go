package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/mockmate/internal/interview"
	"github.com/mockmate/mockmate/internal/store"
)

type startRequest struct {
	Topic           string `json:"topic" binding:"required"`
	CustomTopic     string `json:"customTopic"`
	Difficulty      string `json:"difficulty" binding:"required"`
	QuestionLimit   int    `json:"questionLimit" binding:"required,min=1,max=20"`
	FollowUpEnabled bool   `json:"followUpEnabled"`
}

type questionPayload struct {
	ID       string `json:"id"`
	Seq      int    `json:"seq"`
	Question string `json:"question"`
	Category string `json:"category"`
}

func questionJSON(v interview.TurnView) questionPayload {
	return questionPayload{ID: v.ID, Seq: v.Seq, Question: v.Question, Category: v.Category}
}

func (h *Handler) StartInterview(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid start request")
		return
	}

	topic := interview.Topic(req.Topic)
	difficulty := interview.Difficulty(req.Difficulty)
	if !topic.Valid() {
		badRequest(c, "unknown topic")
		return
	}
	if !difficulty.Valid() {
		badRequest(c, "unknown difficulty")
		return
	}

	res, err := h.engine.Start(c.Request.Context(), callerID(c), interview.StartInput{
		Topic:         topic,
		CustomTopic:   req.CustomTopic,
		Difficulty:    difficulty,
		QuestionLimit: req.QuestionLimit,
		FollowUp:      req.FollowUpEnabled,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"interviewId": res.SessionID,
		"startedAt":   res.StartedAt,
		"question":    questionJSON(res.First),
	})
}

type submitAnswerRequest struct {
	QuestionID        string `json:"questionId" binding:"required"`
	Content           string `json:"content"`
	AnswerTimeSeconds int    `json:"answerTimeSeconds"`
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid answer request")
		return
	}

	res, err := h.engine.SubmitAnswer(c.Request.Context(), callerID(c),
		c.Param("id"), req.QuestionID, req.Content, req.AnswerTimeSeconds)
	if err != nil {
		writeError(c, err)
		return
	}

	body := gin.H{
		"evaluation": gin.H{
			"score":       res.Evaluation.Score,
			"feedback":    res.Evaluation.Feedback,
			"modelAnswer": res.Evaluation.ModelAnswer,
		},
	}
	if res.Next != nil {
		body["nextQuestion"] = questionJSON(*res.Next)
	}

	c.JSON(http.StatusOK, body)
}

func (h *Handler) EndInterview(c *gin.Context) {
	res, err := h.engine.End(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalScore": res.TotalScore,
		"endedAt":    res.EndedAt,
		"summary": gin.H{
			"assessment":     res.Summary.Assessment,
			"overallScore":   res.Summary.OverallScore,
			"categoryScores": res.Summary.CategoryScores,
		},
	})
}

func (h *Handler) CancelInterview(c *gin.Context) {
	if err := h.engine.Cancel(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": store.StatusCancelled})
}

func (h *Handler) ResumeInterview(c *gin.Context) {
	res, err := h.engine.Resume(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentQuestion": questionJSON(res.Current),
		"answeredCount":   res.AnsweredCount,
		"questionLimit":   res.QuestionLimit,
		"readyToEnd":      res.Done,
	})
}

type listQuery struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Status   string `form:"status"`
}

func (h *Handler) ListInterviews(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid list query")
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	sessions, total, err := h.engine.List(c.Request.Context(), callerID(c),
		q.Status, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		items = append(items, sessionSummaryJSON(&sessions[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     q.Page,
		"pageSize": q.PageSize,
	})
}

func (h *Handler) InterviewDetail(c *gin.Context) {
	sess, err := h.engine.Detail(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	turns := make([]gin.H, 0, len(sess.Turns))
	for i := range sess.Turns {
		t := &sess.Turns[i]
		turn := gin.H{
			"id":       t.ID,
			"seq":      t.Seq,
			"question": t.Question,
			"category": t.Category,
		}
		if t.Answered() {
			turn["answer"] = gin.H{
				"content":           t.Answer,
				"score":             t.Score,
				"feedback":          t.Feedback,
				"modelAnswer":       t.ModelAnswer,
				"answerTimeSeconds": t.AnswerTimeSeconds,
			}
		}
		turns = append(turns, turn)
	}

	body := sessionSummaryJSON(sess)
	body["turns"] = turns
	if len(sess.CategoryScores) > 0 {
		var scores []interview.CategoryScore
		if err := json.Unmarshal(sess.CategoryScores, &scores); err == nil {
			body["categoryScores"] = scores
		}
	}

	c.JSON(http.StatusOK, body)
}

func (h *Handler) TodayCount(c *gin.Context) {
	n, err := h.engine.TodayCount(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n, "date": time.Now().Format("2006-01-02")})
}

func sessionSummaryJSON(sess *store.Session) gin.H {
	topic := interview.Topic(sess.Topic)
	return gin.H{
		"interviewId":     sess.ID,
		"topic":           sess.Topic,
		"topicName":       topic.DisplayName(sess.CustomTopic),
		"difficulty":      sess.Difficulty,
		"questionLimit":   sess.QuestionLimit,
		"followUpEnabled": sess.FollowUpEnabled,
		"status":          sess.Status,
		"totalScore":      sess.TotalScore,
		"startedAt":       sess.StartedAt,
		"endedAt":         sess.EndedAt,
	}
}

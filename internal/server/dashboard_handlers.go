package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/mockmate/internal/interview"
)

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.engine.DashboardStats(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalInterviews":     stats.TotalInterviews,
		"completedInterviews": stats.CompletedInterviews,
		"averageScore":        stats.AverageScore,
		"highestScore":        stats.HighestScore,
		"lowestScore":         stats.LowestScore,
		"thisMonthCount":      stats.ThisMonthCount,
	})
}

type trendQuery struct {
	Limit int `form:"limit,default=10"`
}

func (h *Handler) ScoreTrend(c *gin.Context) {
	var q trendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid trend query")
		return
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}

	points, err := h.engine.ScoreTrend(c.Request.Context(), callerID(c), q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]gin.H, 0, len(points))
	for _, p := range points {
		items = append(items, gin.H{
			"interviewId": p.SessionID,
			"score":       p.Score,
			"topic":       p.Topic,
			"difficulty":  p.Difficulty,
			"date":        p.Date.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) CategoryAnalysis(c *gin.Context) {
	analysis, err := h.engine.CategoryAnalysis(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"byTopic":      groupStatsJSON(analysis.ByTopic),
		"byDifficulty": groupStatsJSON(analysis.ByDifficulty),
		"strengths":    analysis.Strengths,
		"weaknesses":   analysis.Weaknesses,
	})
}

type recentQuery struct {
	Limit int `form:"limit,default=5"`
}

func (h *Handler) RecentInterviews(c *gin.Context) {
	var q recentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid recent query")
		return
	}
	if q.Limit < 1 || q.Limit > 50 {
		q.Limit = 5
	}

	sessions, err := h.engine.RecentCompleted(c.Request.Context(), callerID(c), q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		items = append(items, sessionSummaryJSON(&sessions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func groupStatsJSON(stats []interview.GroupStat) []gin.H {
	out := make([]gin.H, 0, len(stats))
	for _, s := range stats {
		out = append(out, gin.H{
			"label":    s.Label,
			"avgScore": s.Average,
			"count":    s.Count,
		})
	}
	return out
}

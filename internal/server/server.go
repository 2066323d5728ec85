// Package server is the thin HTTP surface over the session engine: caller
// identity resolution and request/response marshalling only.
package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/mockmate/internal/interview"
	"github.com/mockmate/mockmate/internal/store"
)

// Handler bundles the dependencies the HTTP handlers need.
type Handler struct {
	engine    *interview.Engine
	users     store.UserRepo
	jwtSecret string
	tokenTTL  time.Duration
}

// New builds the handler set.
func New(engine *interview.Engine, users store.UserRepo, jwtSecret string, tokenTTL time.Duration) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &Handler{
		engine:    engine,
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Router assembles the gin engine with all routes mounted.
func (h *Handler) Router() *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		v1.POST("/auth/signup", h.Signup)
		v1.POST("/auth/login", h.Login)

		authorized := v1.Group("/")
		authorized.Use(JWTMiddleware(h.jwtSecret))
		{
			authorized.POST("/interviews", h.StartInterview)
			authorized.GET("/interviews", h.ListInterviews)
			authorized.GET("/interviews/today-count", h.TodayCount)
			authorized.GET("/interviews/:id", h.InterviewDetail)
			authorized.POST("/interviews/:id/answers", h.SubmitAnswer)
			authorized.POST("/interviews/:id/end", h.EndInterview)
			authorized.POST("/interviews/:id/cancel", h.CancelInterview)
			authorized.GET("/interviews/:id/resume", h.ResumeInterview)

			authorized.GET("/dashboard/stats", h.DashboardStats)
			authorized.GET("/dashboard/score-trend", h.ScoreTrend)
			authorized.GET("/dashboard/category-analysis", h.CategoryAnalysis)
			authorized.GET("/dashboard/recent", h.RecentInterviews)
		}
	}

	return router
}

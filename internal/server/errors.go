package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/mockmate/internal/interview"
	"github.com/mockmate/mockmate/internal/quota"
)

// Stable error codes surfaced to clients alongside the HTTP status.
const (
	codeInternal         = 1000
	codeInvalidRequest   = 1001
	codeSessionNotFound  = 3000
	codeAlreadyEnded     = 3001
	codeQuotaExceeded    = 3002
	codeQuestionNotFound = 3004
	codeAnswerSubmitted  = 3005
	codeForbidden        = 3100
	codePremiumRequired  = 4000
	codeOracleDown       = 6000
	codeOracleTimeout    = 6001
)

// writeError maps an engine/gate error kind to its HTTP status and stable
// code. Unknown errors become 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		fail(c, http.StatusNotFound, codeSessionNotFound, "interview session not found")
	case errors.Is(err, interview.ErrQuestionNotFound):
		fail(c, http.StatusNotFound, codeQuestionNotFound, "question not found")
	case errors.Is(err, interview.ErrForbidden):
		fail(c, http.StatusForbidden, codeForbidden, "not the session owner")
	case errors.Is(err, interview.ErrAlreadyEnded):
		fail(c, http.StatusBadRequest, codeAlreadyEnded, "interview already ended")
	case errors.Is(err, interview.ErrAnswerAlreadySubmitted):
		fail(c, http.StatusBadRequest, codeAnswerSubmitted, "answer already submitted")
	case errors.Is(err, quota.ErrQuotaExceeded):
		fail(c, http.StatusForbidden, codeQuotaExceeded, "daily interview quota exceeded")
	case errors.Is(err, quota.ErrPremiumRequired):
		fail(c, http.StatusForbidden, codePremiumRequired, "premium subscription required")
	case errors.Is(err, interview.ErrOracleTimeout):
		fail(c, http.StatusGatewayTimeout, codeOracleTimeout, "AI response timed out")
	case errors.Is(err, interview.ErrOracleUnavailable):
		fail(c, http.StatusServiceUnavailable, codeOracleDown, "AI service temporarily unavailable")
	default:
		fail(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"code": code, "error": msg})
}

func badRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, codeInvalidRequest, msg)
}

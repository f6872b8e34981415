package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minitweet/internal/apperr"
	"minitweet/internal/model"
	"minitweet/pkg/logger"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

type tweetResponse struct {
	UserID int64  `json:"user_id"`
	Tweet  string `json:"tweet"`
}

type timelineResponse struct {
	UserID   int64           `json:"user_id"`
	Timeline []tweetResponse `json:"timeline"`
}

func newTimelineResponse(tl *model.Timeline) timelineResponse {
	out := timelineResponse{
		UserID:   tl.UserID,
		Timeline: make([]tweetResponse, 0, len(tl.Tweets)),
	}
	for _, t := range tl.Tweets {
		out.Timeline = append(out.Timeline, tweetResponse{UserID: t.UserID, Tweet: t.Text})
	}
	return out
}

type userResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Profile string `json:"profile"`
}

// respondError writes {"error": ...} with the status for err's kind.
// Internal errors are logged and hidden from the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.WithTrace(c.Request.Context(), log).Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

func publicMessage(err error) string {
	for _, kind := range []error{apperr.ErrAuth, apperr.ErrNotFound, apperr.ErrValidation, apperr.ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}

// currentUserID returns the caller set by the auth middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minitweet/internal/service/timeline"
	"minitweet/internal/service/tweet"
)

type TweetHandler struct {
	tweets   *tweet.Service
	timeline *timeline.Service
	logger   *zap.Logger
}

func NewTweetHandler(tweets *tweet.Service, timelines *timeline.Service, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{
		tweets:   tweets,
		timeline: timelines,
		logger:   logger,
	}
}

// Post handles POST /tweet
func (h *TweetHandler) Post(c *gin.Context) {
	var req struct {
		// nil when absent; an empty tweet is allowed
		Tweet *string `json:"tweet" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if _, err := h.tweets.Post(c.Request.Context(), userID, *req.Tweet); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// Timeline handles GET /timeline/:user_id
func (h *TweetHandler) Timeline(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	h.writeTimeline(c, userID)
}

// MyTimeline handles GET /timeline for the authenticated caller.
func (h *TweetHandler) MyTimeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	h.writeTimeline(c, userID)
}

func (h *TweetHandler) writeTimeline(c *gin.Context, userID int64) {
	tl, err := h.timeline.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newTimelineResponse(tl))
}

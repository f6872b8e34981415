package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minitweet/internal/service/social"
)

type FollowHandler struct {
	social *social.Service
	logger *zap.Logger
}

func NewFollowHandler(socialService *social.Service, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{
		social: socialService,
		logger: logger,
	}
}

// Follow handles POST /follow
func (h *FollowHandler) Follow(c *gin.Context) {
	var req struct {
		Follow int64 `json:"follow" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.apply(c, req.Follow, h.social.Follow)
}

// Unfollow handles POST /unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	var req struct {
		Unfollow int64 `json:"unfollow" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.apply(c, req.Unfollow, h.social.Unfollow)
}

func (h *FollowHandler) apply(c *gin.Context, targetID int64, action func(ctx context.Context, followerID, followeeID int64) error) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	if err := action(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

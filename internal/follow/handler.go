package follow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// PUT /:user_id/follow  {"follow": true|false}
func (h *Handler) SetFollow(c *gin.Context) {
	followerID := c.GetHeader("X-User-ID")
	if followerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID := c.Param("user_id")

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	err := h.svc.SetFollow(c.Request.Context(), followerID, targetID, *req.Follow)
	switch {
	case errors.Is(err, ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrSelfFollow.Error()})
		return
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update follow state"})
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{UserID: targetID, Following: *req.Follow})
}

// GET /:user_id/followers/count
func (h *Handler) FollowersCount(c *gin.Context) {
	userID := c.Param("user_id")

	cnt, err := h.svc.FollowersCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count followers"})
		return
	}

	c.JSON(http.StatusOK, CountResponse{UserID: userID, Count: cnt})
}

// GET /:user_id/following/count
func (h *Handler) FollowingCount(c *gin.Context) {
	userID := c.Param("user_id")

	cnt, err := h.svc.FollowingCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count following"})
		return
	}

	c.JSON(http.StatusOK, CountResponse{UserID: userID, Count: cnt})
}

// GET /:user_id/following/me
func (h *Handler) IsFollowing(c *gin.Context) {
	followerID := c.GetHeader("X-User-ID")
	if followerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID := c.Param("user_id")

	ok, err := h.svc.IsFollowing(c.Request.Context(), followerID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check follow state"})
		return
	}

	c.JSON(http.StatusOK, FollowingResponse{UserID: targetID, Following: ok})
}

// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "follow-service",
	})
}

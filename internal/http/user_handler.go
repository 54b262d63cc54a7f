package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/service"
)

// UserHandler mantiene dependencias para endpoints de perfil y feedback.
type UserHandler struct {
	logger       *zap.Logger
	userServ     *service.UserService
	feedbackServ *service.FeedbackService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService, feedbackServ *service.FeedbackService) *UserHandler {
	return &UserHandler{
		logger:       logger,
		userServ:     userServ,
		feedbackServ: feedbackServ,
	}
}

// GetProfile maneja GET /api/user/:userId/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userServ.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// CreateProfile maneja POST /api/user/:userId/profile.
func (h *UserHandler) CreateProfile(c *gin.Context) {
	var req struct {
		Nickname       string `json:"nickname" binding:"required"`
		Fullname       string `json:"fullname" binding:"required"`
		Email          string `json:"email" binding:"required"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: nickname, fullname, email"})
		return
	}

	userID := c.Param("userId")
	user, err := h.userServ.CreateProfile(c.Request.Context(), userID, domain.User{
		Nickname:       req.Nickname,
		Fullname:       req.Fullname,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingProfileFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Profile created successfully",
		"user_id": userID,
		"profile": user,
	})
}

// UpdateProfile maneja PUT /api/user/:userId/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	profile, err := h.userServ.UpdateProfile(c.Request.Context(), c.Param("userId"), fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("update profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// UploadProfilePicture maneja POST /api/user/:userId/profile/picture.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image data is required"})
		return
	}

	url, err := h.userServ.UploadProfilePicture(c.Request.Context(), c.Param("userId"), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImagePayload),
			errors.Is(err, service.ErrUnsupportedImageType),
			errors.Is(err, service.ErrInvalidImageData),
			errors.Is(err, service.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("upload profile picture failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Profile picture uploaded successfully",
		"profile_picture_url": url,
	})
}

// DeleteProfilePicture maneja DELETE /api/user/:userId/profile/picture.
func (h *UserHandler) DeleteProfilePicture(c *gin.Context) {
	url, err := h.userServ.DeleteProfilePicture(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("delete profile picture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Profile picture reset successfully",
		"profile_picture_url": url,
	})
}

// ChangePassword maneja PUT /api/user/:userId/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
		return
	}

	err := h.userServ.ChangePassword(c.Request.Context(), c.Param("userId"), req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordProviderOnly):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("change password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

// SaveFeedback maneja POST /api/user/:userId/feedback.
func (h *UserHandler) SaveFeedback(c *gin.Context) {
	var req struct {
		Feedback string `json:"feedback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback is required"})
		return
	}

	if err := h.feedbackServ.SaveFeedback(c.Request.Context(), c.Param("userId"), req.Feedback); err != nil {
		if errors.Is(err, service.ErrEmptyFeedback) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("save feedback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback saved successfully",
	})
}

// GetStats maneja GET /api/user/:userId/stats.
func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.userServ.Stats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error("get stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

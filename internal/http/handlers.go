package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/service"
)

// Pinger verifica conectividad contra el document store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetaHandler atiende los endpoints de salud, estado y prueba del modelo.
type MetaHandler struct {
	logger    *zap.Logger
	store     Pinger
	queryServ *service.QueryService
	modelName string
}

func NewMetaHandler(logger *zap.Logger, store Pinger, queryServ *service.QueryService, modelName string) *MetaHandler {
	return &MetaHandler{
		logger:    logger,
		store:     store,
		queryServ: queryServ,
		modelName: modelName,
	}
}

// Health maneja GET / y GET /health.
func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Pawspective Dog Breed Recommendation API",
		"note":    "Authentication handled by Android client with Firebase Auth",
	})
}

// APIStatus maneja GET /api/status.
func (h *MetaHandler) APIStatus(c *gin.Context) {
	firebaseStatus := "connected"
	if h.store == nil {
		firebaseStatus = "not_configured"
	} else if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("firestore ping failed", zap.Error(err))
		firebaseStatus = "disconnected"
	}

	aiStatus := "operational"
	if h.queryServ == nil {
		aiStatus = "not_initialized"
	}

	c.JSON(http.StatusOK, gin.H{
		"api_status":      "operational",
		"firebase_status": firebaseStatus,
		"ai_model":        h.modelName,
		"ai_status":       aiStatus,
		"authentication":  "handled_by_android_firebase_auth",
	})
}

// TestAI maneja POST /api/test-ai: corre el pipeline con un usuario sintético.
func (h *MetaHandler) TestAI(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.queryServ.RunQuery(c.Request.Context(), "test_user", "", req.Query)
	if err != nil {
		h.logger.Error("test ai query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"query":    req.Query,
		"response": result.Response,
		"chatId":   result.ChatID,
	})
}

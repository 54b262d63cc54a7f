package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de chats, mensajes y queries.
type ChatHandler struct {
	logger    *zap.Logger
	chatServ  *service.ChatService
	queryServ *service.QueryService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService, queryServ *service.QueryService) *ChatHandler {
	return &ChatHandler{
		logger:    logger,
		chatServ:  chatServ,
		queryServ: queryServ,
	}
}

// ListChats maneja GET /api/chats/:userId.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatServ.ListChats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"chats":      chats,
		"totalChats": len(chats),
	})
}

// CreateChat maneja POST /api/chats/:userId.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	// El body es opcional; sin título se crea como "New Chat".
	_ = c.ShouldBindJSON(&req)

	chatID, err := h.chatServ.CreateChat(c.Request.Context(), c.Param("userId"), req.Title)
	if err != nil {
		h.logger.Error("create chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Chat created successfully",
		"chatId":  chatID,
	})
}

// DeleteChat maneja DELETE /api/chats/:userId/:chatId.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	err := h.chatServ.DeleteChat(c.Request.Context(), c.Param("userId"), c.Param("chatId"))
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		h.logger.Error("delete chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Chat deleted successfully",
	})
}

// ListMessages maneja GET /api/chats/:userId/:chatId/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.chatServ.ListMessages(c.Request.Context(), c.Param("userId"), c.Param("chatId"))
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
	})
}

// SendMessage maneja POST /api/chats/:userId/:chatId/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	result, err := h.chatServ.SendMessage(c.Request.Context(), c.Param("userId"), c.Param("chatId"), req.Message)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Message sent successfully",
		"response": result.Response,
		"chatId":   result.ChatID,
	})
}

// ProcessQuery maneja POST /api/query/:userId; chatId es opcional en el body.
func (h *ChatHandler) ProcessQuery(c *gin.Context) {
	var req struct {
		Query  string `json:"query" binding:"required"`
		ChatID string `json:"chatId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	result, err := h.queryServ.RunQuery(c.Request.Context(), c.Param("userId"), req.ChatID, req.Query)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": result.Response,
		"chatId":   result.ChatID,
	})
}

func (h *ChatHandler) respondQueryError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("query pipeline failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

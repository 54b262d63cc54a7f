package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y las rutas del API.
func NewRouter(
	logger *zap.Logger,
	userH *UserHandler,
	chatH *ChatHandler,
	metaH *MetaHandler,
	authMW gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Endpoint not found",
			"message": "The requested API endpoint does not exist",
		})
	})
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method not allowed",
			"message": "The HTTP method is not allowed for this endpoint",
		})
	})

	r.GET("/", metaH.Health)
	r.GET("/health", metaH.Health)
	r.GET("/api/status", metaH.APIStatus)
	r.POST("/api/test-ai", metaH.TestAI)

	// Rutas por usuario; la autenticacion la maneja el cliente Android salvo
	// que se habilite el middleware de verificacion de tokens.
	user := r.Group("/api/user/:userId")
	chats := r.Group("/api/chats/:userId")
	query := r.Group("/api/query/:userId")
	if authMW != nil {
		user.Use(authMW)
		chats.Use(authMW)
		query.Use(authMW)
	}

	user.GET("/profile", userH.GetProfile)
	user.POST("/profile", userH.CreateProfile)
	user.PUT("/profile", userH.UpdateProfile)
	user.POST("/profile/picture", userH.UploadProfilePicture)
	user.DELETE("/profile/picture", userH.DeleteProfilePicture)
	user.PUT("/change-password", userH.ChangePassword)
	user.POST("/feedback", userH.SaveFeedback)
	user.GET("/stats", userH.GetStats)

	chats.GET("", chatH.ListChats)
	chats.POST("", chatH.CreateChat)
	chats.DELETE("/:chatId", chatH.DeleteChat)
	chats.GET("/:chatId/messages", chatH.ListMessages)
	chats.POST("/:chatId/messages", chatH.SendMessage)

	query.POST("", chatH.ProcessQuery)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

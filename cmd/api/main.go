package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/config"
	"github.com/vincentbmw/PawspectiveProject/internal/email"
	"github.com/vincentbmw/PawspectiveProject/internal/firebase"
	apihttp "github.com/vincentbmw/PawspectiveProject/internal/http"
	"github.com/vincentbmw/PawspectiveProject/internal/llm"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
	"github.com/vincentbmw/PawspectiveProject/internal/service"
	"github.com/vincentbmw/PawspectiveProject/internal/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	fb, err := firebase.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}
	defer fb.Close()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("gemini init", zap.Error(err))
	}
	defer geminiClient.Close()

	userRepo := repository.NewFsUserRepository(fb.Firestore)
	chatRepo := repository.NewFsChatRepository(fb.Firestore)
	messageRepo := repository.NewFsMessageRepository(fb.Firestore)
	feedbackRepo := repository.NewFsFeedbackRepository(fb.Firestore)
	identityRepo := repository.NewFirebaseIdentityRepository(fb.Auth)
	imageStore := storage.NewGCSImageStore(fb.Bucket, fb.BucketName())

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SenderEmail != "" && cfg.CompanyEmail != "" {
		sender, err := email.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SenderEmail,
			cfg.SenderPassword,
			cfg.CompanyEmail,
			cfg.AppName,
			cfg.SubjectPrefix,
			cfg.EmailRetryAttempts,
			cfg.SMTPUseTLS,
		)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	querySvc := service.NewQueryService(geminiClient, chatRepo, messageRepo)
	chatSvc := service.NewChatService(chatRepo, messageRepo, querySvc)
	userSvc := service.NewUserService(logger, userRepo, chatRepo, messageRepo, identityRepo, imageStore)
	feedbackSvc := service.NewFeedbackService(logger, feedbackRepo, userRepo, emailSender)

	userHandler := apihttp.NewUserHandler(logger, userSvc, feedbackSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc, querySvc)
	metaHandler := apihttp.NewMetaHandler(logger, fb, querySvc, cfg.GeminiModel)

	var authMW gin.HandlerFunc
	if cfg.RequireAuth {
		authMW = apihttp.FirebaseAuthMiddleware(identityRepo)
		logger.Info("id token verification enabled")
	}

	router := apihttp.NewRouter(logger, userHandler, chatHandler, metaHandler, authMW)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("ai_model", cfg.GeminiModel),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

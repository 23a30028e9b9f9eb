package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/FaizanInstinct/bytebuddy-chat/config"
	"github.com/FaizanInstinct/bytebuddy-chat/controller"
	"github.com/FaizanInstinct/bytebuddy-chat/dao"
	"github.com/FaizanInstinct/bytebuddy-chat/llm"
	"github.com/FaizanInstinct/bytebuddy-chat/logger"
	"github.com/FaizanInstinct/bytebuddy-chat/logic"
	"github.com/FaizanInstinct/bytebuddy-chat/middleware"
	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

func main() {
	// Initialize config; .env supplies the secrets referenced from the YAML
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}
	cfg := &config.GlobalConfig
	logger.SetLevel(cfg.Log.Level)

	// Initialize database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize generation client
	generator := llm.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	chatLogic := logic.NewChatLogic(userDAO, convoDAO, messageDAO, generator)
	convoLogic := logic.NewConversationLogic(convoDAO)
	cleanupLogic := logic.NewCleanupLogic(convoDAO, time.Duration(cfg.Retention.Days)*24*time.Hour)

	// Initialize Controllers
	chatCtrl := controller.NewChatController(chatLogic, convoLogic)
	convoCtrl := controller.NewConversationController(convoLogic)
	uploadCtrl := controller.NewUploadController(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	cleanupCtrl := controller.NewCleanupController(cleanupLogic)

	// Start background retention sweep
	cleanupLogic.StartRetentionWorker(context.Background(), time.Duration(cfg.Retention.SweepMinutes)*time.Minute)

	// Setup Gin router
	r := gin.Default()
	r.Use(middleware.Identity(cfg.Auth.JWTSecret))

	r.POST("/chat", chatCtrl.SubmitMessage)
	r.GET("/chat", chatCtrl.GetConversation)
	r.GET("/conversations", convoCtrl.ListConversations)
	r.POST("/conversations", convoCtrl.CreateConversation)
	r.DELETE("/conversations", convoCtrl.DeleteConversation)
	r.DELETE("/conversations/clear", middleware.RequireIdentity(), convoCtrl.ClearConversations)
	r.GET("/conversations/export", middleware.RequireIdentity(), convoCtrl.ExportConversations)
	r.POST("/upload", uploadCtrl.UploadImage)
	r.GET("/cleanup", cleanupCtrl.Cleanup)
	r.Static("/uploads", cfg.Upload.Dir)

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

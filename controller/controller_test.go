package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/FaizanInstinct/bytebuddy-chat/dao"
	"github.com/FaizanInstinct/bytebuddy-chat/llm"
	"github.com/FaizanInstinct/bytebuddy-chat/logic"
	"github.com/FaizanInstinct/bytebuddy-chat/middleware"
	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

const testSecret = "controller-test-secret"

type mockGenerator struct {
	replyFn  func(history []llm.ContextMessage) (string, error)
	titleFn  func(seed string) string
	intentFn func(text string) string
}

func (m *mockGenerator) GenerateReply(_ context.Context, history []llm.ContextMessage) (string, error) {
	if m.replyFn != nil {
		return m.replyFn(history)
	}
	return "mock reply", nil
}

func (m *mockGenerator) GenerateTitle(_ context.Context, seed string) string {
	if m.titleFn != nil {
		return m.titleFn(seed)
	}
	return "Mock Title"
}

func (m *mockGenerator) ClassifyIntent(_ context.Context, text string) string {
	if m.intentFn != nil {
		return m.intentFn(text)
	}
	return "question"
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	gen       *mockGenerator
	convoDAO  *dao.ConversationDAO
	msgDAO    *dao.MessageDAO
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}))

	gen := &mockGenerator{}
	userDAO := dao.NewUserDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	chatLogic := logic.NewChatLogic(userDAO, convoDAO, messageDAO, gen)
	convoLogic := logic.NewConversationLogic(convoDAO)
	cleanupLogic := logic.NewCleanupLogic(convoDAO, 7*24*time.Hour)

	chatCtrl := NewChatController(chatLogic, convoLogic)
	convoCtrl := NewConversationController(convoLogic)
	uploadDir := t.TempDir()
	uploadCtrl := NewUploadController(uploadDir, 5*1024*1024)
	cleanupCtrl := NewCleanupController(cleanupLogic)

	r := gin.New()
	r.Use(middleware.Identity(testSecret))
	r.POST("/chat", chatCtrl.SubmitMessage)
	r.GET("/chat", chatCtrl.GetConversation)
	r.GET("/conversations", convoCtrl.ListConversations)
	r.POST("/conversations", convoCtrl.CreateConversation)
	r.DELETE("/conversations", convoCtrl.DeleteConversation)
	r.DELETE("/conversations/clear", middleware.RequireIdentity(), convoCtrl.ClearConversations)
	r.GET("/conversations/export", middleware.RequireIdentity(), convoCtrl.ExportConversations)
	r.POST("/upload", uploadCtrl.UploadImage)
	r.GET("/cleanup", cleanupCtrl.Cleanup)

	return &testEnv{
		router:    r,
		db:        db,
		gen:       gen,
		convoDAO:  convoDAO,
		msgDAO:    messageDAO,
		uploadDir: uploadDir,
	}
}

func bearerToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

// doJSON performs a JSON request against the test router. auth may be empty
// for anonymous calls.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

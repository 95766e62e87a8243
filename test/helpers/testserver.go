package helpers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"buildxpert/database"
	"buildxpert/internal/app"
	"buildxpert/internal/auth"
	"buildxpert/internal/config"
	"buildxpert/internal/logger"
	"buildxpert/internal/models"
	"buildxpert/ws"
)

// TestServer is a fully wired router backed by the DATABASE_URL
// database. Shared across the integration suite.
type TestServer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Manager *ws.Manager
}

var (
	testServer *TestServer
	setupOnce  sync.Once
	setupErr   error
)

// GetTestServer returns the shared server, skipping the test when no
// database is configured.
func GetTestServer(t *testing.T) *TestServer {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		config.LoadConfig()
		cfg := config.GetConfig()

		logger.Init("development")
		auth.Init("integration-test-secret", 60)
		cfg.JWT.Secret = "integration-test-secret"

		db, err := database.Connect(cfg.Database.DSN)
		if err != nil {
			setupErr = err
			return
		}
		if err := database.Migrate(db); err != nil {
			setupErr = err
			return
		}

		router, manager, err := app.SetupRouter(cfg, db)
		if err != nil {
			setupErr = err
			return
		}
		go manager.Run()

		testServer = &TestServer{Router: router, DB: db, Manager: manager}
	})

	if setupErr != nil {
		t.Fatalf("test server setup failed: %v", setupErr)
	}
	return testServer
}

// ClearTables wipes every table between tests, children first.
func (s *TestServer) ClearTables(t *testing.T) {
	t.Helper()

	for _, table := range []string{
		"messages", "uploads", "refresh_tokens", "jobs",
		"contacts", "bounces", "email_templates", "users",
	} {
		if err := s.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clear table %s: %v", table, err)
		}
	}
}

// SendRequest performs one request against the router. body is
// marshalled to JSON when non-nil; token goes into the Bearer header.
func (s *TestServer) SendRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// CreateUser inserts a user directly and returns it with a valid
// access token.
func (s *TestServer) CreateUser(t *testing.T, name, email string, role models.UserRole) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// DecodeJSON unmarshals a recorded response body.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pollsite/config"
	"pollsite/models"

	"gorm.io/gorm"
)

// Day is the unit used by question fixtures.
const Day = 24 * time.Hour

// SetupTestDB opens a migrated sqlite database private to the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "polls_test.db")

	db, err := config.OpenDB(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() config.Config {
	return config.Config{
		Port:         8080,
		DatabaseType: config.DatabaseSQLite,
		DatabaseURL:  "polls_test.db",
		JWT: config.JWTConfig{
			Secret:     []byte("test-secret"),
			Expiration: time.Hour,
		},
		IndexLimit:    5,
		MaxIndexLimit: 50,
		LogLevel:      "error",
		LogFormat:     "text",
		GinMode:       "test",
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestQuestion stores a question published `offset` away from now
// (negative for the past) with the given choices.
func CreateTestQuestion(t *testing.T, db *gorm.DB, text string, offset time.Duration, choices ...string) *models.Question {
	t.Helper()

	question := &models.Question{
		Text:            text,
		PublicationDate: time.Now().Add(offset),
	}
	for _, c := range choices {
		question.Choices = append(question.Choices, models.Choice{Text: c})
	}

	if err := db.Create(question).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return question
}

// CreateTestUser stores a user with a pre-hashed dummy password.
func CreateTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// VoteCount reads the stored tally of a choice.
func VoteCount(t *testing.T, db *gorm.DB, choiceID uint) int {
	t.Helper()

	var choice models.Choice
	if err := db.First(&choice, choiceID).Error; err != nil {
		t.Fatalf("Failed to load choice %d: %v", choiceID, err)
	}
	return choice.VoteCount
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

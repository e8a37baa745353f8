package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSessionSecret = "test-session-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func setupTestMedia(t *testing.T) *storage.MediaStore {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewMediaStore(filepath.Join(dir, "uploads"), filepath.Join(dir, "avatars"))
	require.NoError(t, err)
	return store
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:    username,
		Password:    string(hash),
		Avatar:      models.DefaultAvatar,
		Description: models.DefaultDescription,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, image string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Image: image, Caption: "test caption"}
	require.NoError(t, db.Create(post).Error)
	return post
}

// newFormContext builds an echo context for a form POST, optionally
// authenticated as userID
func newFormContext(t *testing.T, e *echo.Echo, path string, form url.Values, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

// newJSONContext builds an echo context for a JSON request
func newJSONContext(t *testing.T, e *echo.Echo, method, path, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

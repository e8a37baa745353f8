package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gallario/backend/internal/middleware"
	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/gallario/backend/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	media          *storage.MediaStore
	sessionSecret  string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, media *storage.MediaStore, sessionSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		media:          media,
		sessionSecret:  sessionSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.GET("/login", h.LoginStatus)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.GET("/register", h.LoginStatus)
	e.POST("/register", h.Register)
}

// LoginStatus reports whether the request carries a valid session
func (h *AuthHandler) LoginStatus(c echo.Context) error {
	userID := getUserIDFromContext(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "authenticated": userID != 0})
}

// Register creates a new account from form fields, with an optional avatar upload
func (h *AuthHandler) Register(c echo.Context) error {
	req := models.RegisterRequest{
		Username: strings.TrimSpace(c.FormValue("username")),
		Password: c.FormValue("password"),
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Username and password required."})
	}

	// Optional avatar; fall back to the stock image when missing or invalid
	avatarPath := models.DefaultAvatar
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		src, err := fileHeader.Open()
		if err == nil {
			if saved, err := h.media.SaveAvatar(src, fileHeader.Filename); err == nil {
				avatarPath = saved
			}
			src.Close()
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:    req.Username,
		Password:    string(hashedPassword),
		Avatar:      avatarPath,
		Description: models.DefaultDescription,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "Username already taken."})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Account created. Please log in."})
}

// Login verifies credentials and binds a session cookie to the user.
// Failures keep to one generic message so usernames cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	req := models.LoginRequest{
		Username: strings.TrimSpace(c.FormValue("username")),
		Password: c.FormValue("password"),
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid username or password"})
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid username or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid username or password"})
	}

	token, err := h.generateSessionToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Hour * 72),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// Logout clears the session cookie unconditionally
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// generateSessionToken signs session claims for a given user
func (h *AuthHandler) generateSessionToken(user *models.User) (string, error) {
	claims := &models.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.sessionSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/gallario/backend/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles profile views, avatar changes and description updates
type ProfileHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	media          *storage.MediaStore
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, media *storage.MediaStore) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		media:          media,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.GET("/profile/:username", h.GetProfile)
	e.POST("/profile/avatar", h.ChangeAvatar, requireUser)
	e.POST("/description", h.ChangeDescription, requireUser)
}

// GetProfile returns a user's profile with all their posts, newest-first
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	username := c.Param("username")

	profileUser, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByUserID(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"profile": profileUser,
		"posts":   posts,
	})
}

// ChangeAvatar processes an uploaded avatar and updates the user's avatar path
func (h *ProfileHandler) ChangeAvatar(c echo.Context) error {
	userID := getUserIDFromContext(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file selected."})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	avatarPath, err := h.media.SaveAvatar(src, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNoFile) || errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid avatar file."})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.UpdateAvatar(userID, avatarPath); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "avatar": avatarPath})
}

// ChangeDescription updates the user's profile description from a JSON body
func (h *ProfileHandler) ChangeDescription(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.UpdateDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request payload"})
	}
	req.Description = strings.TrimSpace(req.Description)

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Description too long (max 1000 chars)."})
	}

	if err := h.userRepository.UpdateDescription(userID, req.Description); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "description": req.Description})
}

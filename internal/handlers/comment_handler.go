package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	notifRepo repositories.NotificationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.POST("/comment/:post_id", h.CreateComment, requireUser)
}

// CreateComment adds a comment to a post and notifies the post owner
// unless they commented on their own post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	postID, err := parsePostID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid post ID"})
	}

	req := models.CreateCommentRequest{
		Text: strings.TrimSpace(c.FormValue("comment")),
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Comment cannot be empty."})
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != userID {
		notification := &models.Notification{
			MakerID:    userID,
			ReceiverID: post.UserID,
			Type:       models.NotificationTypeComment,
			PostID:     postID,
			CommentID:  &comment.ID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "comment": comment})
}

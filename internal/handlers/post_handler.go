package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/gallario/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles post upload, detail view, deletion and image serving
type PostHandler struct {
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	commentRepository  repositories.CommentRepository
	reactionRepository repositories.ReactionRepository
	media              *storage.MediaStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	reactionRepo repositories.ReactionRepository,
	media *storage.MediaStore,
) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		userRepository:     userRepo,
		commentRepository:  commentRepo,
		reactionRepository: reactionRepo,
		media:              media,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.POST("/upload", h.Upload, requireUser)
	e.GET("/post/:post_id", h.GetPost)
	e.POST("/delete/:post_id", h.DeletePost, requireUser)
	e.GET("/uploads/:filename", h.ServeUpload)
}

// Upload stores the image file first and only then inserts the post row
// that references it, so a crash can orphan a file but never a row.
func (h *PostHandler) Upload(c echo.Context) error {
	userID := getUserIDFromContext(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file uploaded."})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	stored, err := h.media.SaveUpload(src, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNoFile) || errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid file type."})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		UserID:  userID,
		Image:   stored,
		Caption: strings.TrimSpace(c.FormValue("caption")),
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "post": post})
}

// GetPost returns a post with its owner, comments oldest-first, live
// reaction counts and the viewer's own vote
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid post ID"})
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	owner, err := h.userRepository.GetUserByID(post.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, dislikes, err := h.reactionRepository.CountsForPost(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userVote := 0
	if viewerID := getUserIDFromContext(c); viewerID != 0 {
		userVote, err = h.reactionRepository.GetUserReaction(postID, viewerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"post":          post,
		"owner":         owner,
		"comments":      comments,
		"like_count":    likes,
		"dislike_count": dislikes,
		"user_vote":     userVote,
	})
}

// DeletePost removes a post, its reactions and comments (owner only).
// The backing file is deleted last, best-effort.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	postID, err := parsePostID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid post ID"})
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "You can only delete your own posts."})
	}

	if err := h.postRepository.DeletePostCascade(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// File cleanup must never block the row deletions
	h.media.Remove(post.Image)

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ServeUpload serves raw stored image bytes
func (h *PostHandler) ServeUpload(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Not found"})
	}
	return c.File(h.media.UploadPath(filename))
}

// parsePostID parses the post_id path parameter
func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

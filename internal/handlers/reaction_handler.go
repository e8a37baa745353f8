package handlers

import (
	"errors"
	"net/http"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReactionHandler handles like/dislike requests. Both endpoints run the
// same transition function so their state machines cannot drift apart.
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.POST("/like/:post_id", h.Like, requireUser)
	e.POST("/dislike/:post_id", h.Dislike, requireUser)
}

// Like toggles a like on a post
func (h *ReactionHandler) Like(c echo.Context) error {
	return h.react(c, models.ReactionLike)
}

// Dislike toggles a dislike on a post
func (h *ReactionHandler) Dislike(c echo.Context) error {
	return h.react(c, models.ReactionDislike)
}

func (h *ReactionHandler) react(c echo.Context, value int) error {
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

	result, err := h.reactionRepository.Apply(userID, post, value)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"like_count":    result.LikeCount,
		"dislike_count": result.DislikeCount,
	})
}

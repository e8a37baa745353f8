package handlers

import (
	"net/http"
	"strconv"

	"github.com/gallario/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the main feed
type FeedHandler struct {
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo) {
	e.GET("/", h.GetFeed)
}

// GetFeed returns the paginated feed, newest-first. Each post carries live
// reaction counts, the viewer's own vote and the comment count.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	posts, err := h.postRepository.GetFeed(viewerID, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"page":    page,
		"posts":   posts,
	})
}

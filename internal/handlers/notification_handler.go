package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.GET("/notifications", h.GetNotifications, requireUser)
	e.GET("/notifications/unread-count", h.GetUnreadCount, requireUser)
	e.POST("/notifications/:id/seen", h.MarkSeen, requireUser)
}

// GetNotifications returns all notifications for the current user,
// most-recent-first, enriched with maker, post and comment details
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := getUserIDFromContext(c)

	items, err := h.notificationRepository.GetByReceiverID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := make([]echo.Map, 0, len(items))
	for _, n := range items {
		item := echo.Map{
			"id":         n.ID,
			"type":       n.Type,
			"seen":       n.Seen,
			"created_at": n.CreatedAt,
			"maker": echo.Map{
				"username": n.MakerUsername,
				"avatar":   n.MakerAvatar,
			},
			"post": echo.Map{
				"id":    n.PostID,
				"image": n.PostImage,
			},
		}
		if n.Type == models.NotificationTypeComment && n.CommentID != nil {
			item["comment"] = echo.Map{
				"id":   *n.CommentID,
				"text": n.CommentText,
			}
		}
		data = append(data, item)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "notifications": data})
}

// GetUnreadCount returns the unseen notification count for the current user
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID := getUserIDFromContext(c)

	count, err := h.notificationRepository.GetUnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}

// MarkSeen flips the seen flag on one of the requester's notifications.
// Foreign and non-existent ids both come back as not found.
func (h *NotificationHandler) MarkSeen(c echo.Context) error {
	userID := getUserIDFromContext(c)

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid notification ID"})
	}

	if err := h.notificationRepository.MarkSeen(uint(notifID), userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Not found or not allowed"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

package repositories

import (
	"fmt"

	"github.com/gallario/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when a seen-update matches no row
// owned by the requester.
var ErrNotificationNotFound = fmt.Errorf("notification not found")

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByReceiverID(receiverID uint) ([]models.NotificationItem, error)
	GetUnreadCount(receiverID uint) (int64, error)
	MarkSeen(notificationID, receiverID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByReceiverID returns all notifications for a user, most-recent-first,
// enriched with the maker's identity, the referenced post and, for comment
// notifications, the comment itself.
func (r *postgresNotificationRepository) GetByReceiverID(receiverID uint) ([]models.NotificationItem, error) {
	var items []models.NotificationItem
	err := r.db.Raw(`
		SELECT n.id, n.type, n.post_id, n.seen, n.created_at, n.comment_id,
		       u.username AS maker_username,
		       u.avatar AS maker_avatar,
		       COALESCE(p.image, '') AS post_image,
		       COALESCE(c.text, '') AS comment_text
		FROM notifications n
		JOIN users u ON n.maker_id = u.id
		LEFT JOIN posts p ON n.post_id = p.id
		LEFT JOIN comments c ON n.comment_id = c.id
		WHERE n.receiver_id = ?
		ORDER BY n.created_at DESC, n.id DESC
	`, receiverID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND seen = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkSeen flips the seen flag on a notification owned by the receiver.
// A missing or foreign notification id is reported, never silently accepted.
func (r *postgresNotificationRepository) MarkSeen(notificationID, receiverID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", notificationID, receiverID).
		Update("seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

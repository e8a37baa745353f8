package models

import "time"

// Notification type tags
const (
	NotificationTypeLike    = 0
	NotificationTypeDislike = 1
	NotificationTypeComment = 2
	NotificationTypeDM      = 3 // reserved, no behavior defined
)

// Notification records an event directed at a user. Rows are append-only;
// the only mutation ever applied is flipping Seen from false to true.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MakerID    uint      `json:"maker_id" gorm:"index;not null"`    // User who triggered the notification
	ReceiverID uint      `json:"receiver_id" gorm:"index;not null"` // User who receives the notification
	Type       int       `json:"type" gorm:"not null"`
	PostID     uint      `json:"post_id" gorm:"index"` // Referenced post
	CommentID  *uint     `json:"comment_id,omitempty"` // Set for comment notifications only
	Seen       bool      `json:"seen" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// NotificationItem is a notification row enriched with maker, post and
// comment details for the notification listing.
type NotificationItem struct {
	ID            uint      `json:"id"`
	Type          int       `json:"type"`
	PostID        uint      `json:"post_id"`
	Seen          bool      `json:"seen"`
	CreatedAt     time.Time `json:"created_at"`
	CommentID     *uint     `json:"comment_id"`
	MakerUsername string    `json:"maker_username"`
	MakerAvatar   string    `json:"maker_avatar"`
	PostImage     string    `json:"post_image"`
	CommentText   string    `json:"comment_text"`
}

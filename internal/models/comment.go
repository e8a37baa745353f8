package models

import "time"

// Comment represents a comment on a post. Comments are immutable and are
// removed only when their post is deleted.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment row joined with its author's identity
type CommentWithAuthor struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
}

// CreateCommentRequest defines the form body for creating a new comment
type CreateCommentRequest struct {
	Text string `form:"comment" validate:"required,min=1,max=500"`
}

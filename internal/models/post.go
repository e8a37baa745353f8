package models

import "time"

// Post represents an uploaded image with its caption
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"` // Owner of the post
	Image     string    `json:"image" gorm:"not null"`         // Stored filename of the uploaded image
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// FeedPost is a post row annotated with author info and live aggregates
type FeedPost struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Image        string    `json:"image"`
	Caption      string    `json:"caption"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar"`
	LikeCount    int64     `json:"like_count"`
	DislikeCount int64     `json:"dislike_count"`
	UserVote     int       `json:"user_vote"` // Requesting user's own reaction, 0 if none or anonymous
	CommentCount int64     `json:"comment_count"`
}

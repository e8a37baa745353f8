package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultAvatar is the stock avatar assigned to users who never uploaded one.
const DefaultAvatar = "avatars/default.png"

// DefaultDescription is the placeholder shown until the user writes a bio.
const DefaultDescription = "No description set."

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"` // Unique across all users, case-sensitive
	Password    string    `json:"-" gorm:"not null"`                    // Store hashed password, ignore for JSON serialization
	Avatar      string    `json:"avatar"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterRequest defines the form fields for account creation
type RegisterRequest struct {
	Username string `form:"username" validate:"required,max=50"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest defines the form fields for authentication
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// UpdateDescriptionRequest defines the JSON body for profile description updates
type UpdateDescriptionRequest struct {
	Description string `json:"description" validate:"max=1000"`
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

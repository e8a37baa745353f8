package models

// Reaction polarity values. Absence of a row means neutral.
const (
	ReactionLike    = 1
	ReactionDislike = -1
)

// Reaction represents a user's like or dislike on a post.
// The composite unique index is the guard against duplicate-reaction races:
// two concurrent inserts for the same (user, post) pair cannot both succeed.
type Reaction struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_reactions_user_post;not null"`
	PostID uint `json:"post_id" gorm:"uniqueIndex:idx_reactions_user_post;not null"`
	Value  int  `json:"value" gorm:"not null"` // +1 = like, -1 = dislike
}

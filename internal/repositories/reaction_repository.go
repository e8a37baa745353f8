package repositories

import (
	"errors"
	"fmt"

	"github.com/gallario/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionResult reports the outcome of a reaction transition together with
// the recomputed live counts for the post.
type ReactionResult struct {
	Value        int   // resulting reaction value, 0 when toggled off
	LikeCount    int64
	DislikeCount int64
}

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Apply(userID uint, post *models.Post, value int) (*ReactionResult, error)
	GetUserReaction(postID, userID uint) (int, error)
	CountsForPost(postID uint) (likes, dislikes int64, err error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// Apply runs the reaction transition for a (user, post) pair in one
// transaction. Both the like and the dislike endpoints converge here.
//
//	no existing row        -> insert requested value
//	existing == requested  -> delete (toggle off)
//	existing != requested  -> update in place
//
// A notification is written to the post owner whenever a row transitions
// into existence with a polarity (fresh insert or switch-in), never on
// toggle-off and never for self-directed reactions. Concurrent first-time
// inserts for the same pair are resolved by the unique index on
// (user_id, post_id); the loser's transaction fails instead of producing a
// second row.
func (r *PostgresReactionRepository) Apply(userID uint, post *models.Post, value int) (*ReactionResult, error) {
	if value != models.ReactionLike && value != models.ReactionDislike {
		return nil, fmt.Errorf("invalid reaction value %d", value)
	}

	result := &ReactionResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{UserID: userID, PostID: post.ID, Value: value}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			result.Value = value
			if err := r.notifyOwner(tx, userID, post, value); err != nil {
				return err
			}

		case err != nil:
			return err

		case existing.Value == value:
			if err := tx.Delete(&models.Reaction{}, existing.ID).Error; err != nil {
				return err
			}
			result.Value = 0

		default:
			if err := tx.Model(&models.Reaction{}).Where("id = ?", existing.ID).
				Update("value", value).Error; err != nil {
				return err
			}
			result.Value = value
			// Switching polarity always emits a fresh notification of the new type
			if err := r.notifyOwner(tx, userID, post, value); err != nil {
				return err
			}
		}

		likes, dislikes, err := countsForPost(tx, post.ID)
		if err != nil {
			return err
		}
		result.LikeCount = likes
		result.DislikeCount = dislikes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// notifyOwner writes a like/dislike notification unless the actor owns the post
func (r *PostgresReactionRepository) notifyOwner(tx *gorm.DB, userID uint, post *models.Post, value int) error {
	if post.UserID == userID {
		return nil
	}
	notifType := models.NotificationTypeLike
	if value == models.ReactionDislike {
		notifType = models.NotificationTypeDislike
	}
	return tx.Create(&models.Notification{
		MakerID:    userID,
		ReceiverID: post.UserID,
		Type:       notifType,
		PostID:     post.ID,
	}).Error
}

// GetUserReaction returns the user's current reaction value for a post, 0 if none
func (r *PostgresReactionRepository) GetUserReaction(postID, userID uint) (int, error) {
	var reaction models.Reaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return reaction.Value, nil
}

// CountsForPost returns the live like and dislike counts for a post
func (r *PostgresReactionRepository) CountsForPost(postID uint) (int64, int64, error) {
	return countsForPost(r.db, postID)
}

func countsForPost(tx *gorm.DB, postID uint) (int64, int64, error) {
	var likes, dislikes int64
	if err := tx.Model(&models.Reaction{}).
		Where("post_id = ? AND value = ?", postID, models.ReactionLike).
		Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := tx.Model(&models.Reaction{}).
		Where("post_id = ? AND value = ?", postID, models.ReactionDislike).
		Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

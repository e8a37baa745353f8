package repositories

import (
	"github.com/gallario/backend/internal/models"
	"gorm.io/gorm"
)

// FeedPageSize is the number of posts returned per feed page
const FeedPageSize = 5

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetFeed(viewerID uint, page int) ([]models.FeedPost, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	DeletePostCascade(postID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeed returns posts most-recent-first, annotated with author info,
// live reaction counts, the viewer's own vote and the comment count.
// Aggregates are computed per request, nothing is materialized.
func (r *PostgresPostRepository) GetFeed(viewerID uint, page int) ([]models.FeedPost, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * FeedPageSize

	var posts []models.FeedPost
	err := r.db.Raw(`
		SELECT posts.id, posts.user_id, posts.image, posts.caption, posts.created_at,
		       users.username, users.avatar,
		       COALESCE((SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.value = 1), 0) AS like_count,
		       COALESCE((SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.value = -1), 0) AS dislike_count,
		       COALESCE((SELECT value FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ?), 0) AS user_vote,
		       COALESCE((SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id), 0) AS comment_count
		FROM posts
		JOIN users ON posts.user_id = users.id
		ORDER BY posts.created_at DESC, posts.id DESC
		LIMIT ? OFFSET ?
	`, viewerID, FeedPageSize, offset).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves all posts by a user, most-recent-first, unpaginated
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePostCascade removes a post together with its reactions and comments.
// Dependent rows go first so the post row never dangles without them.
func (r *PostgresPostRepository) DeletePostCascade(postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

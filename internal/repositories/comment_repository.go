package repositories

import (
	"github.com/gallario/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.CommentWithAuthor, error)
	GetCommentCountByPostID(postID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, oldest-first,
// joined with each commenter's identity
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.Raw(`
		SELECT comments.id, comments.post_id, comments.user_id, comments.text, comments.created_at,
		       users.username, users.avatar
		FROM comments
		JOIN users ON comments.user_id = users.id
		WHERE comments.post_id = ?
		ORDER BY comments.created_at ASC, comments.id ASC
	`, postID).Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentCountByPostID retrieves the count of comments for a post
func (r *PostgresCommentRepository) GetCommentCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

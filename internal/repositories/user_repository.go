package repositories

import (
	"github.com/gallario/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateAvatar(userID uint, avatar string) error
	UpdateDescription(userID uint, description string) error
	CountUsers() (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user. A username collision surfaces as
// gorm.ErrDuplicatedKey via the unique index on username.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact username match
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar sets a new avatar path for the user
func (r *PostgresUserRepository) UpdateAvatar(userID uint, avatar string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", avatar).Error
}

// UpdateDescription sets a new profile description for the user
func (r *PostgresUserRepository) UpdateDescription(userID uint, description string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("description", description).Error
}

// CountUsers returns the total number of registered users
func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

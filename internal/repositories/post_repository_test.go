package repositories

import (
	"testing"
	"time"

	"github.com/gallario/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetFeedOrderingAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	author := createTestUser(t, db, "author")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		createTestPost(t, db, author.ID, "pic.png", base.Add(time.Duration(i)*time.Hour))
	}

	page1, err := repo.GetFeed(0, 1)
	require.NoError(t, err)
	require.Len(t, page1, FeedPageSize)

	// Newest first
	for i := 1; i < len(page1); i++ {
		assert.True(t, !page1[i].CreatedAt.After(page1[i-1].CreatedAt))
	}

	page2, err := repo.GetFeed(0, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestGetFeedAnnotations(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	reactionRepo := NewPostgresReactionRepository(db)

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	other := createTestUser(t, db, "other")
	post := createTestPost(t, db, author.ID, "pic.png", time.Now())

	_, err := reactionRepo.Apply(viewer.ID, post, models.ReactionLike)
	require.NoError(t, err)
	_, err = reactionRepo.Apply(other.ID, post, models.ReactionDislike)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: other.ID, Text: "nice"}).Error)

	feed, err := postRepo.GetFeed(viewer.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	row := feed[0]
	assert.Equal(t, post.ID, row.ID)
	assert.Equal(t, "author", row.Username)
	assert.Equal(t, int64(1), row.LikeCount)
	assert.Equal(t, int64(1), row.DislikeCount)
	assert.Equal(t, models.ReactionLike, row.UserVote)
	assert.Equal(t, int64(1), row.CommentCount)

	// Anonymous viewer sees no own vote
	feed, err = postRepo.GetFeed(0, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 0, feed[0].UserVote)
}

func TestGetPostsByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, db, author.ID, "a1.png", base)
	createTestPost(t, db, author.ID, "a2.png", base.Add(time.Hour))
	createTestPost(t, db, other.ID, "b1.png", base.Add(2*time.Hour))

	posts, err := repo.GetPostsByUserID(author.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a2.png", posts[0].Image)
	assert.Equal(t, "a1.png", posts[1].Image)
}

func TestDeletePostCascade(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	reactionRepo := NewPostgresReactionRepository(db)

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "pic.png", time.Now())

	_, err := reactionRepo.Apply(fan.ID, post, models.ReactionLike)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: fan.ID, Text: "hello"}).Error)

	require.NoError(t, postRepo.DeletePostCascade(post.ID))

	_, err = postRepo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reactions, comments int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&reactions).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Equal(t, int64(0), reactions)
	assert.Equal(t, int64(0), comments)
}

package repositories

import (
	"testing"
	"time"

	"github.com/gallario/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByReceiverIDEnrichment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	owner := createTestUser(t, db, "owner")
	actor := createTestUser(t, db, "actor")
	post := createTestPost(t, db, owner.ID, "pic.png", time.Now())

	comment := &models.Comment{PostID: post.ID, UserID: actor.ID, Text: "great shot"}
	require.NoError(t, db.Create(comment).Error)

	likeNotif := &models.Notification{
		MakerID: actor.ID, ReceiverID: owner.ID,
		Type: models.NotificationTypeLike, PostID: post.ID,
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	commentNotif := &models.Notification{
		MakerID: actor.ID, ReceiverID: owner.ID,
		Type: models.NotificationTypeComment, PostID: post.ID, CommentID: &comment.ID,
		CreatedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateNotification(likeNotif))
	require.NoError(t, repo.CreateNotification(commentNotif))

	items, err := repo.GetByReceiverID(owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Most recent first
	assert.Equal(t, models.NotificationTypeComment, items[0].Type)
	assert.Equal(t, "actor", items[0].MakerUsername)
	assert.Equal(t, "pic.png", items[0].PostImage)
	require.NotNil(t, items[0].CommentID)
	assert.Equal(t, comment.ID, *items[0].CommentID)
	assert.Equal(t, "great shot", items[0].CommentText)

	assert.Equal(t, models.NotificationTypeLike, items[1].Type)
	assert.Empty(t, items[1].CommentText)

	// The actor has no notifications of their own
	items, err = repo.GetByReceiverID(actor.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkSeenScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	owner := createTestUser(t, db, "owner")
	actor := createTestUser(t, db, "actor")
	post := createTestPost(t, db, owner.ID, "pic.png", time.Now())

	notif := &models.Notification{
		MakerID: actor.ID, ReceiverID: owner.ID,
		Type: models.NotificationTypeLike, PostID: post.ID,
	}
	require.NoError(t, repo.CreateNotification(notif))

	// Foreign user cannot mark it
	err := repo.MarkSeen(notif.ID, actor.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	// Non-existent id is reported, never silently accepted
	err = repo.MarkSeen(999, owner.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, repo.MarkSeen(notif.ID, owner.ID))

	var stored models.Notification
	require.NoError(t, db.First(&stored, notif.ID).Error)
	assert.True(t, stored.Seen)
}

func TestGetUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	owner := createTestUser(t, db, "owner")
	actor := createTestUser(t, db, "actor")
	post := createTestPost(t, db, owner.ID, "pic.png", time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(&models.Notification{
			MakerID: actor.ID, ReceiverID: owner.ID,
			Type: models.NotificationTypeLike, PostID: post.ID,
		}))
	}

	count, err := repo.GetUnreadCount(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var first models.Notification
	require.NoError(t, db.Where("receiver_id = ?", owner.ID).First(&first).Error)
	require.NoError(t, repo.MarkSeen(first.ID, owner.ID))

	count, err = repo.GetUnreadCount(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

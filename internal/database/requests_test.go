package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	first := &models.ItemRequest{Description: "need a drill", RequesterID: alice.ID}
	require.NoError(t, db.CreateRequest(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond)
	second := &models.ItemRequest{Description: "need a ladder", RequesterID: alice.ID}
	require.NoError(t, db.CreateRequest(ctx, second))

	fromBob := &models.ItemRequest{Description: "need a tent", RequesterID: bob.ID}
	require.NoError(t, db.CreateRequest(ctx, fromBob))

	t.Run("get by id", func(t *testing.T) {
		got, err := db.GetRequestByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "need a drill", got.Description)

		_, err = db.GetRequestByID(ctx, 999)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("own requests newest first", func(t *testing.T) {
		requests, err := db.GetRequestsByRequester(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, second.ID, requests[0].ID)
		assert.Equal(t, first.ID, requests[1].ID)
	})

	t.Run("others excludes the caller", func(t *testing.T) {
		requests, err := db.GetRequestsFromOthers(ctx, alice.ID, models.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, fromBob.ID, requests[0].ID)

		requests, err = db.GetRequestsFromOthers(ctx, bob.ID, models.Page{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, first.ID, requests[0].ID)
	})
}

func TestCommentQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Author", "author@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	t.Run("empty list initialized", func(t *testing.T) {
		comments, err := db.GetCommentsByItem(ctx, item.ID)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("create and list with author name", func(t *testing.T) {
		comment := &models.Comment{Text: "works great", ItemID: item.ID, AuthorID: author.ID}
		require.NoError(t, db.CreateComment(ctx, comment))
		assert.NotZero(t, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())

		comments, err := db.GetCommentsByItem(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "works great", comments[0].Text)
		assert.Equal(t, "Author", comments[0].AuthorName)
	})
}

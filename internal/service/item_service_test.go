package service

import (
	"context"
	"io"
	"testing"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newItemService(repo *mockRepo, bookings *mockBookingReader, bus *mockEventBus) *ItemService {
	logger := zerolog.New(io.Discard)
	return NewItemService(repo, bookings, bus, &logger)
}

func boolPtr(v bool) *bool { return &v }

func TestItemServiceSave(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		repo.On("CreateItem", ctx, mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
			args.Get(1).(*models.Item).ID = 1
		})

		item, err := svc.Save(ctx, 2, models.CreateItemInput{Name: "Drill", Description: "Cordless", Available: boolPtr(true)})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)
		assert.Equal(t, int64(2), item.OwnerID)
		assert.True(t, item.Available)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetUserByID", ctx, int64(99)).Return(nil, database.ErrUserNotFound).Once()

		_, err := svc.Save(ctx, 99, models.CreateItemInput{Name: "Drill", Description: "Cordless", Available: boolPtr(true)})
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})

	t.Run("missing availability", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()

		_, err := svc.Save(ctx, 2, models.CreateItemInput{Name: "Drill", Description: "Cordless"})
		assert.ErrorIs(t, err, ErrMissingAvailable)
	})

	t.Run("blank name", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()

		_, err := svc.Save(ctx, 2, models.CreateItemInput{Name: "  ", Description: "Cordless", Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("against unknown request", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		repo.On("GetRequestByID", ctx, int64(44)).Return(nil, database.ErrRequestNotFound).Once()

		_, err := svc.Save(ctx, 2, models.CreateItemInput{Name: "Drill", Description: "Cordless", Available: boolPtr(true), RequestID: 44})
		assert.ErrorIs(t, err, database.ErrRequestNotFound)
	})
}

func TestItemServiceUpdate(t *testing.T) {
	ctx := context.Background()
	stored := func() *models.Item {
		return &models.Item{ID: 1, Name: "Drill", Description: "Cordless", Available: true, OwnerID: 2}
	}

	t.Run("partial update keeps blank fields", func(t *testing.T) {
		repo := new(mockRepo)
		bookings := new(mockBookingReader)
		svc := newItemService(repo, bookings, nil)

		repo.On("GetItemByID", ctx, int64(1)).Return(stored(), nil).Once()
		repo.On("UpdateItem", ctx, mock.MatchedBy(func(i *models.Item) bool {
			return i.Name == "Drill" && i.Description == "Corded now" && !i.Available
		})).Return(nil).Once()
		repo.On("GetCommentsByItem", ctx, int64(1)).Return([]models.Comment{}, nil).Once()
		bookings.On("AdjacentBookings", ctx, int64(1)).Return(nil, nil, nil).Once()

		details, err := svc.Update(ctx, 2, 1, models.UpdateItemInput{Description: "Corded now", Available: boolPtr(false)})
		assert.NoError(t, err)
		assert.Equal(t, "Drill", details.Name)
		assert.False(t, details.Available)
		repo.AssertExpectations(t)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("GetItemByID", ctx, int64(1)).Return(stored(), nil).Once()

		_, err := svc.Update(ctx, 3, 1, models.UpdateItemInput{Name: "Hammer"})
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestItemServiceFindByID(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 1, Name: "Drill", OwnerID: 2, Available: true}
	comments := []models.Comment{{ID: 1, Text: "worked fine"}}

	t.Run("owner sees bookings", func(t *testing.T) {
		repo := new(mockRepo)
		bookings := new(mockBookingReader)
		svc := newItemService(repo, bookings, nil)

		last := &models.ShortBooking{ID: 4, BookerID: 3}
		repo.On("GetItemByID", ctx, int64(1)).Return(item, nil).Once()
		repo.On("GetCommentsByItem", ctx, int64(1)).Return(comments, nil).Once()
		bookings.On("AdjacentBookings", ctx, int64(1)).Return(last, nil, nil).Once()

		details, err := svc.FindByID(ctx, 2, 1)
		assert.NoError(t, err)
		assert.Equal(t, last, details.LastBooking)
		assert.Nil(t, details.NextBooking)
		assert.Len(t, details.Comments, 1)
	})

	t.Run("stranger sees comments only", func(t *testing.T) {
		repo := new(mockRepo)
		bookings := new(mockBookingReader)
		svc := newItemService(repo, bookings, nil)

		repo.On("GetItemByID", ctx, int64(1)).Return(item, nil).Once()
		repo.On("GetCommentsByItem", ctx, int64(1)).Return(comments, nil).Once()

		details, err := svc.FindByID(ctx, 77, 1)
		assert.NoError(t, err)
		assert.Nil(t, details.LastBooking)
		assert.Nil(t, details.NextBooking)
		bookings.AssertNotCalled(t, "AdjacentBookings", ctx, int64(1))
	})
}

func TestItemServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query returns empty", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		items, err := svc.Search(ctx, "   ", 0, 10)
		assert.NoError(t, err)
		assert.Empty(t, items)
		repo.AssertNotCalled(t, "SearchItems", ctx, mock.Anything, mock.Anything)
	})

	t.Run("matches", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		repo.On("SearchItems", ctx, "drill", models.Page{Limit: 10, Offset: 0}).
			Return([]*models.Item{{ID: 1, Name: "Drill"}}, nil).Once()

		items, err := svc.Search(ctx, "drill", 0, 10)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("bad pagination", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		_, err := svc.Search(ctx, "drill", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})
}

func TestItemServiceSaveComment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		bookings := new(mockBookingReader)
		bus := new(mockEventBus)
		svc := newItemService(repo, bookings, bus)

		repo.On("GetUserByID", ctx, int64(3)).Return(&models.User{ID: 3, Name: "Renter"}, nil).Once()
		repo.On("GetItemByID", ctx, int64(1)).Return(&models.Item{ID: 1, OwnerID: 2}, nil).Once()
		bookings.On("ValidateEligibleForComment", ctx, int64(3), int64(1)).Return(nil).Once()
		repo.On("CreateComment", ctx, mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 12
		})
		bus.On("PublishJSON", mock.Anything, mock.Anything).Return(nil).Once()

		comment, err := svc.SaveComment(ctx, 3, 1, "worked fine")
		assert.NoError(t, err)
		assert.Equal(t, int64(12), comment.ID)
		assert.Equal(t, "Renter", comment.AuthorName)
	})

	t.Run("blank text", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, nil, nil)

		_, err := svc.SaveComment(ctx, 3, 1, "  ")
		assert.ErrorIs(t, err, ErrEmptyComment)
	})

	t.Run("not eligible", func(t *testing.T) {
		repo := new(mockRepo)
		bookings := new(mockBookingReader)
		svc := newItemService(repo, bookings, nil)

		repo.On("GetUserByID", ctx, int64(3)).Return(&models.User{ID: 3}, nil).Once()
		repo.On("GetItemByID", ctx, int64(1)).Return(&models.Item{ID: 1}, nil).Once()
		bookings.On("ValidateEligibleForComment", ctx, int64(3), int64(1)).Return(ErrCommentNotAllowed).Once()

		_, err := svc.SaveComment(ctx, 3, 1, "nice")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})
}

func TestItemServiceFindByOwner(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepo)
	bookings := new(mockBookingReader)
	svc := newItemService(repo, bookings, nil)

	items := []*models.Item{{ID: 1, OwnerID: 2}, {ID: 2, OwnerID: 2}}
	repo.On("GetItemsByOwner", ctx, int64(2), models.Page{Limit: 10, Offset: 0}).Return(items, nil).Once()
	repo.On("GetCommentsByItem", ctx, mock.Anything).Return([]models.Comment{}, nil).Twice()
	bookings.On("AdjacentBookings", ctx, int64(1)).Return(&models.ShortBooking{ID: 9}, nil, nil).Once()
	bookings.On("AdjacentBookings", ctx, int64(2)).Return(nil, nil, nil).Once()

	details, err := svc.FindByOwner(ctx, 2, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, details, 2)
	assert.NotNil(t, details[0].LastBooking)
	assert.Nil(t, details[1].LastBooking)
}

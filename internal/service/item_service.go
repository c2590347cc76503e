package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	bookings domain.BookingReader
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, bookings domain.BookingReader, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		bookings: bookings,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Save registers a new item for the owner. All fields are required on
// creation, unlike partial updates.
func (s *ItemService) Save(ctx context.Context, ownerID int64, in models.CreateItemInput) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if in.Available == nil {
		return nil, ErrMissingAvailable
	}

	if in.RequestID != 0 {
		if _, err := s.repo.GetRequestByID(ctx, in.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update applies a partial edit. Blank name/description and nil
// availability keep the stored values.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, in models.UpdateItemInput) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if strings.TrimSpace(in.Name) != "" {
		item.Name = in.Name
	}
	if strings.TrimSpace(in.Description) != "" {
		item.Description = in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.details(ctx, item, true)
}

// FindByID returns the item with comments. Booking annotations are
// visible to the owner only.
func (s *ItemService) FindByID(ctx context.Context, callerID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, item, item.OwnerID == callerID)
}

// FindByOwner pages through the owner's items with full annotations.
func (s *ItemService) FindByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.ItemDetails, error) {
	page, err := NormalizePage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	result := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		details, err := s.details(ctx, item, true)
		if err != nil {
			return nil, err
		}
		result = append(result, details)
	}
	return result, nil
}

// Search matches available items by name or description. A blank query
// short-circuits to an empty result.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}

	page, err := NormalizePage(from, size)
	if err != nil {
		return nil, err
	}

	return s.repo.SearchItems(ctx, text, page)
}

// SaveComment stores feedback from a renter who finished a booking of
// the item.
func (s *ItemService) SaveComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	if err := s.bookings.ValidateEligibleForComment(ctx, authorID, itemID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: itemID, AuthorID: authorID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment, nil
}

// ItemsByRequest lists items offered in response to a request.
func (s *ItemService) ItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error) {
	items, err := s.repo.GetItemsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		result = append(result, *item)
	}
	return result, nil
}

func (s *ItemService) details(ctx context.Context, item *models.Item, isOwner bool) (*models.ItemDetails, error) {
	comments, err := s.repo.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	details := &models.ItemDetails{Item: *item, Comments: comments}

	if isOwner {
		last, next, err := s.bookings.AdjacentBookings(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		details.LastBooking = last
		details.NextBooking = next
	}

	return details, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo         domain.Repository
	eventBus     domain.EventPublisher
	notifyWorker domain.NotifyWorker
	logger       *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, notifyWorker domain.NotifyWorker, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:         repo,
		eventBus:     eventBus,
		notifyWorker: notifyWorker,
		logger:       logger,
	}
}

// Create places a WAITING booking for the caller. Preconditions are
// checked in a fixed order so error responses stay stable.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in models.CreateBookingInput) (*models.Booking, error) {
	item, err := s.repo.GetItemByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}

	// Собственную вещь бронировать нельзя, заявка выглядит как несуществующая
	if item.OwnerID == bookerID {
		return nil, ErrOwnBooking
	}

	if !item.Available {
		return nil, database.ErrItemUnavailable
	}

	if err := validateTimeRange(in.Start, in.End); err != nil {
		return nil, err
	}

	booking, err := s.repo.CreateBooking(ctx, in.ItemID, bookerID, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueNotify(ctx, "booking_created", booking)

	return booking, nil
}

func validateTimeRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	now := time.Now()
	if start.Before(now) || end.Before(now) {
		return ErrTimeInPast
	}
	return nil
}

// Approve records the owner's decision on a WAITING booking.
func (s *BookingService) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.OwnerID != ownerID {
		// Для постороннего заявка не видна
		return nil, database.ErrBookingNotFound
	}

	if booking.Status != models.StatusWaiting {
		return nil, ErrDuplicateDecision
	}

	toStatus := models.StatusApproved
	eventType := events.EventBookingApproved
	if !approved {
		toStatus = models.StatusRejected
		eventType = events.EventBookingRejected
	}

	err = s.repo.UpdateBookingStatusGuarded(ctx, bookingID, models.StatusWaiting, toStatus)
	if errors.Is(err, database.ErrConcurrentModification) {
		// Проигравший гонку видит то же, что и повторное решение
		return nil, ErrDuplicateDecision
	}
	if err != nil {
		return nil, err
	}

	booking, err = s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(eventType, booking)
	s.enqueueNotify(ctx, "booking_decided", booking)

	return booking, nil
}

// FindByID returns the booking only to its booker or the item's owner.
func (s *BookingService) FindByID(ctx context.Context, bookingID, callerID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != callerID && booking.OwnerID != callerID {
		return nil, database.ErrBookingNotFound
	}
	return booking, nil
}

// FindByBooker lists the caller's own bookings in the requested bucket.
func (s *BookingService) FindByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}

	normalized, err := NormalizeState(state)
	if err != nil {
		return nil, err
	}

	page, err := NormalizePage(from, size)
	if err != nil {
		return nil, err
	}

	return s.repo.GetBookingsByBooker(ctx, bookerID, normalized, time.Now(), page)
}

// FindByOwner lists bookings of the caller's items. An owner without
// items has nothing to view and gets an error rather than an empty page.
func (s *BookingService) FindByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	zeroItems, err := s.repo.HasOwnerZeroItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if zeroItems {
		return nil, ErrZeroItems
	}

	normalized, err := NormalizeState(state)
	if err != nil {
		return nil, err
	}

	page, err := NormalizePage(from, size)
	if err != nil {
		return nil, err
	}

	return s.repo.GetBookingsByOwner(ctx, ownerID, normalized, time.Now(), page)
}

// AdjacentBookings returns the item's last and next bookings relative
// to now. The next booking is suppressed while there is no last one,
// so a freshly listed item shows no schedule at all.
func (s *BookingService) AdjacentBookings(ctx context.Context, itemID int64) (*models.ShortBooking, *models.ShortBooking, error) {
	now := time.Now()

	last, err := s.repo.LastBookingForItem(ctx, itemID, now)
	if err != nil {
		return nil, nil, err
	}
	if last == nil {
		return nil, nil, nil
	}

	next, err := s.repo.NextBookingForItem(ctx, itemID, now)
	if err != nil {
		return nil, nil, err
	}

	return last.Short(), next.Short(), nil
}

// ValidateEligibleForComment allows a comment only after the author
// finished at least one booking of the item.
func (s *BookingService) ValidateEligibleForComment(ctx context.Context, bookerID, itemID int64) error {
	finished, err := s.repo.GetFinishedBookings(ctx, itemID, bookerID, time.Now())
	if err != nil {
		return err
	}
	if len(finished) == 0 {
		return ErrCommentNotAllowed
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		OwnerID:   booking.OwnerID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueNotify(ctx context.Context, taskType string, booking *models.Booking) {
	if s.notifyWorker == nil {
		return
	}

	if err := s.notifyWorker.EnqueueTask(ctx, taskType, booking); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Str("task", taskType).Msg("notify enqueue error")
	}
}

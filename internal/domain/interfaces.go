package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the storage port shared by all services.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]*models.Item, error)
	GetItemsByRequestID(ctx context.Context, requestID int64) ([]*models.Item, error)
	HasOwnerZeroItems(ctx context.Context, ownerID int64) (bool, error)
	UpdateItem(ctx context.Context, item *models.Item) error

	CreateBooking(ctx context.Context, itemID, bookerID int64, start, end time.Time) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusGuarded(ctx context.Context, id int64, fromStatus, toStatus string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state string, now time.Time, page models.Page) ([]*models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state string, now time.Time, page models.Page) ([]*models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	GetFinishedBookings(ctx context.Context, itemID, bookerID int64, now time.Time) ([]*models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	GetRequestsFromOthers(ctx context.Context, requesterID int64, page models.Page) ([]*models.ItemRequest, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// NotifyWorker queues delivery of a booking lifecycle notification.
type NotifyWorker interface {
	EnqueueTask(ctx context.Context, taskType string, booking *models.Booking) error
}

// RateLimiter answers whether a caller may proceed within the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// BookingReader is the narrow port the item catalog uses to annotate
// items and gate comments without a service cycle.
type BookingReader interface {
	AdjacentBookings(ctx context.Context, itemID int64) (*models.ShortBooking, *models.ShortBooking, error)
	ValidateEligibleForComment(ctx context.Context, bookerID, itemID int64) error
}

type BookingService interface {
	BookingReader
	Create(ctx context.Context, bookerID int64, in models.CreateBookingInput) (*models.Booking, error)
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error)
	FindByID(ctx context.Context, bookingID, callerID int64) (*models.Booking, error)
	FindByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*models.Booking, error)
	FindByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*models.Booking, error)
}

type ItemService interface {
	Save(ctx context.Context, ownerID int64, in models.CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, in models.UpdateItemInput) (*models.ItemDetails, error)
	FindByID(ctx context.Context, callerID, itemID int64) (*models.ItemDetails, error)
	FindByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.ItemDetails, error)
	Search(ctx context.Context, text string, from, size int) ([]*models.Item, error)
	SaveComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)
}

type UserService interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, in models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type RequestService interface {
	Save(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error)
	FindByID(ctx context.Context, callerID, requestID int64) (*models.ItemRequest, error)
	FindAllOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	FindAllFromOthers(ctx context.Context, callerID int64, from, size int) ([]*models.ItemRequest, error)
}

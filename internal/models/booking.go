package models

import "time"

type Booking struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	OwnerID    int64     `json:"owner_id"`
	BookerID   int64     `json:"booker_id"`
	BookerName string    `json:"booker_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ShortBooking is the compact form attached to item details.
type ShortBooking struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Short compacts the booking for item annotations. Safe on nil so
// absent bookings pass through unchanged.
func (b *Booking) Short() *ShortBooking {
	if b == nil {
		return nil
	}
	return &ShortBooking{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// CreateBookingInput is the renter-facing creation shape.
type CreateBookingInput struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

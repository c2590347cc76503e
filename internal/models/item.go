package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   int64     `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDetails is an item as rendered on the detail views: comments
// always, last/next booking only when the caller owns the item.
type ItemDetails struct {
	Item
	Comments    []Comment     `json:"comments"`
	LastBooking *ShortBooking `json:"last_booking,omitempty"`
	NextBooking *ShortBooking `json:"next_booking,omitempty"`
}

// CreateItemInput is the shape for item creation; name, description
// and availability are all required here, unlike updates.
type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"request_id,omitempty"`
}

// UpdateItemInput carries a partial item update. Nil availability and
// blank name/description keep the stored values.
type UpdateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

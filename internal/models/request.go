package models

import "time"

// ItemRequest is a free-text ask for an item someone should list. The
// Items slice is derived on read from items referencing the request,
// never stored.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []Item    `json:"items"`
}

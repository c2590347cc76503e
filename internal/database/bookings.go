package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingSelect = `
        SELECT b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
               b.start_at, b.end_at, b.status, b.created_at, b.updated_at
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        JOIN users u ON u.id = b.booker_id`

// CreateBooking inserts a WAITING booking. The availability re-check
// and the insert run in one transaction so a concurrent item update
// cannot slip between them.
func (db *DB) CreateBooking(ctx context.Context, itemID, bookerID int64, start, end time.Time) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM items WHERE id = ?`, itemID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check item in tx: %w", err)
	}
	if !available {
		return nil, ErrItemUnavailable
	}

	now := time.Now().UTC()
	query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query, itemID, bookerID, start.UTC(), end.UTC(), models.StatusWaiting, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return db.GetBooking(ctx, id)
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := db.scanBookingRow(db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusGuarded flips the status only when the stored
// status still equals fromStatus. Zero rows affected means another
// decision won the race.
func (db *DB) UpdateBookingStatusGuarded(ctx context.Context, id int64, fromStatus, toStatus string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, toStatus, time.Now().UTC(), id, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// GetBookingsByBooker returns the renter's bookings in the requested
// temporal/status bucket, newest start first.
func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state string, now time.Time, page models.Page) ([]*models.Booking, error) {
	where, args, err := stateClause("b.booker_id", bookerID, state, now)
	if err != nil {
		return nil, err
	}
	query := bookingSelect + where + ` ORDER BY b.start_at DESC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)
	return db.queryBookings(ctx, query, args...)
}

// GetBookingsByOwner is the owner-side view over bookings of the
// owner's items.
func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state string, now time.Time, page models.Page) ([]*models.Booking, error) {
	where, args, err := stateClause("i.owner_id", ownerID, state, now)
	if err != nil {
		return nil, err
	}
	query := bookingSelect + where + ` ORDER BY b.start_at DESC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)
	return db.queryBookings(ctx, query, args...)
}

func stateClause(column string, id int64, state string, now time.Time) (string, []interface{}, error) {
	now = now.UTC()
	base := fmt.Sprintf(" WHERE %s = ?", column)
	switch state {
	case models.StateAll:
		return base, []interface{}{id}, nil
	case models.StateCurrent:
		return base + " AND b.start_at < ? AND b.end_at > ?", []interface{}{id, now, now}, nil
	case models.StatePast:
		return base + " AND b.end_at < ?", []interface{}{id, now}, nil
	case models.StateFuture:
		return base + " AND b.start_at > ?", []interface{}{id, now}, nil
	case models.StateWaiting, models.StateRejected:
		return base + " AND b.status = ?", []interface{}{id, state}, nil
	default:
		return "", nil, fmt.Errorf("unknown booking state: %s", state)
	}
}

// LastBookingForItem finds the most recent booking started before now.
// Returns nil without error when the item has no booking history.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? AND b.start_at < ? ORDER BY b.start_at DESC LIMIT 1`
	booking, err := db.scanBookingRow(db.QueryRowContext(ctx, query, itemID, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

// NextBookingForItem finds the soonest booking starting after now.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? AND b.start_at > ? ORDER BY b.start_at ASC LIMIT 1`
	booking, err := db.scanBookingRow(db.QueryRowContext(ctx, query, itemID, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// GetFinishedBookings returns the booker's bookings of an item that
// already ended, for the comment eligibility check.
func (db *DB) GetFinishedBookings(ctx context.Context, itemID, bookerID int64, now time.Time) ([]*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? AND b.booker_id = ? AND b.end_at < ?`
	return db.queryBookings(ctx, query, itemID, bookerID, now.UTC())
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := db.scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (db *DB) scanBookingRow(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

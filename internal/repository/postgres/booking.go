package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cab/internal/domain"
	"cab/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, identifier, role, pickup, dropoff, trip_date, trip_time, vehicle_type, vehicle_name, fare, distance, duration, description, step, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	var confirmedAt sql.NullTime
	if !booking.ConfirmedAt.IsZero() {
		confirmedAt = sql.NullTime{Time: booking.ConfirmedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Identifier,
		booking.Role,
		booking.Details.Pickup,
		booking.Details.Dropoff,
		booking.Details.Date,
		booking.Details.Time,
		booking.VehicleType,
		booking.VehicleName,
		booking.Estimate.Fare,
		booking.Estimate.Distance,
		booking.Estimate.Duration,
		booking.Estimate.Description,
		booking.Step,
		confirmedAt,
		booking.CreatedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, identifier, role, pickup, dropoff, trip_date, trip_time, vehicle_type, vehicle_name, fare, distance, duration, description, step, confirmed_at, created_at
		FROM bookings WHERE id = $1
	`

	var booking domain.Booking
	var confirmedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.Identifier,
		&booking.Role,
		&booking.Details.Pickup,
		&booking.Details.Dropoff,
		&booking.Details.Date,
		&booking.Details.Time,
		&booking.VehicleType,
		&booking.VehicleName,
		&booking.Estimate.Fare,
		&booking.Estimate.Distance,
		&booking.Estimate.Duration,
		&booking.Estimate.Description,
		&booking.Step,
		&confirmedAt,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if confirmedAt.Valid {
		booking.ConfirmedAt = confirmedAt.Time
	}

	return &booking, nil
}

// GetAll retrieves recent bookings.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT id, identifier, role, pickup, dropoff, trip_date, trip_time, vehicle_type, vehicle_name, fare, distance, duration, description, step, confirmed_at, created_at
		FROM bookings ORDER BY created_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		var booking domain.Booking
		var confirmedAt sql.NullTime
		if err := rows.Scan(
			&booking.ID,
			&booking.Identifier,
			&booking.Role,
			&booking.Details.Pickup,
			&booking.Details.Dropoff,
			&booking.Details.Date,
			&booking.Details.Time,
			&booking.VehicleType,
			&booking.VehicleName,
			&booking.Estimate.Fare,
			&booking.Estimate.Distance,
			&booking.Estimate.Duration,
			&booking.Estimate.Description,
			&booking.Step,
			&confirmedAt,
			&booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		if confirmedAt.Valid {
			booking.ConfirmedAt = confirmedAt.Time
		}
		bookings = append(bookings, &booking)
	}
	return bookings, rows.Err()
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET step = $1, confirmed_at = $2
		WHERE id = $3
	`

	var confirmedAt sql.NullTime
	if !booking.ConfirmedAt.IsZero() {
		confirmedAt = sql.NullTime{Time: booking.ConfirmedAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, booking.Step, confirmedAt, booking.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

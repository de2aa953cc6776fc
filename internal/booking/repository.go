package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = `id, club_id, facility_id, member_id,
	to_char(date, 'YYYY-MM-DD') AS date,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	party_size, status, notes, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `INSERT INTO bookings (club_id, facility_id, member_id, date, start_time, end_time, party_size, status, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		b.ClubID, b.FacilityID, b.MemberID, b.Date, b.StartTime, b.EndTime, b.PartySize, b.Status, b.Notes).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, clubID, bookingID uuid.UUID) (*Booking, error) {
	var b Booking
	query := `SELECT ` + bookingColumns + `
	          FROM bookings
	          WHERE id = $1 AND club_id = $2`
	err := r.db.GetContext(ctx, &b, query, bookingID, clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) ListActiveForDate(ctx context.Context, facilityID uuid.UUID, date string) ([]Booking, error) {
	bookings := []Booking{}
	query := `SELECT ` + bookingColumns + `
	          FROM bookings
	          WHERE facility_id = $1 AND date = $2 AND status IN ('confirmed', 'pending')`
	if err := r.db.SelectContext(ctx, &bookings, query, facilityID, date); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresRepository) ListUpcomingForMember(ctx context.Context, memberID uuid.UUID) ([]BookingWithFacility, error) {
	bookings := []BookingWithFacility{}
	query := `SELECT b.id, b.club_id, b.facility_id, b.member_id,
	                 to_char(b.date, 'YYYY-MM-DD') AS date,
	                 to_char(b.start_time, 'HH24:MI') AS start_time,
	                 to_char(b.end_time, 'HH24:MI') AS end_time,
	                 b.party_size, b.status, b.notes, b.created_at, b.updated_at,
	                 f.name AS facility_name, f.type AS facility_type
	          FROM bookings b
	          JOIN facilities f ON f.id = b.facility_id
	          WHERE b.member_id = $1
	            AND b.status IN ('confirmed', 'pending')
	            AND b.date >= CURRENT_DATE
	          ORDER BY b.date ASC, b.start_time ASC`
	if err := r.db.SelectContext(ctx, &bookings, query, memberID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresRepository) ListForFacility(ctx context.Context, clubID, facilityID uuid.UUID, date string) ([]BookingWithFacility, error) {
	bookings := []BookingWithFacility{}
	query := `SELECT b.id, b.club_id, b.facility_id, b.member_id,
	                 to_char(b.date, 'YYYY-MM-DD') AS date,
	                 to_char(b.start_time, 'HH24:MI') AS start_time,
	                 to_char(b.end_time, 'HH24:MI') AS end_time,
	                 b.party_size, b.status, b.notes, b.created_at, b.updated_at,
	                 f.name AS facility_name, f.type AS facility_type
	          FROM bookings b
	          JOIN facilities f ON f.id = b.facility_id
	          WHERE b.club_id = $1 AND b.facility_id = $2 AND b.date = $3
	          ORDER BY b.start_time ASC`
	if err := r.db.SelectContext(ctx, &bookings, query, clubID, facilityID, date); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status Status) (*Booking, error) {
	var b Booking
	query := `UPDATE bookings
	          SET status = $2, updated_at = NOW()
	          WHERE id = $1
	          RETURNING ` + bookingColumns
	err := r.db.QueryRowxContext(ctx, query, bookingID, status).StructScan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

package facility

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrFacilityNotFound = errors.New("facility not found")

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, clubID, facilityID uuid.UUID) (*Facility, error) {
	var f Facility
	query := `SELECT id, club_id, name, type, description, capacity, is_active, created_at
	          FROM facilities
	          WHERE id = $1 AND club_id = $2 AND is_active = true`
	err := r.db.GetContext(ctx, &f, query, facilityID, clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) ListByClub(ctx context.Context, clubID uuid.UUID, facilityType *Type) ([]Facility, error) {
	facilities := []Facility{}
	query := `SELECT id, club_id, name, type, description, capacity, is_active, created_at
	          FROM facilities
	          WHERE club_id = $1 AND is_active = true`
	args := []interface{}{clubID}
	if facilityType != nil {
		query += ` AND type = $2`
		args = append(args, *facilityType)
	}
	query += ` ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &facilities, query, args...); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *Facility) error {
	query := `INSERT INTO facilities (club_id, name, type, description, capacity)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, is_active, created_at`
	return r.db.QueryRowxContext(ctx, query, f.ClubID, f.Name, f.Type, f.Description, f.Capacity).
		Scan(&f.ID, &f.IsActive, &f.CreatedAt)
}

func (r *PostgresRepository) ListSlots(ctx context.Context, facilityID uuid.UUID, dayOfWeek int) ([]BookingSlot, error) {
	slots := []BookingSlot{}
	query := `SELECT id, facility_id, day_of_week,
	                 to_char(start_time, 'HH24:MI') AS start_time,
	                 to_char(end_time, 'HH24:MI') AS end_time,
	                 max_bookings, is_active
	          FROM booking_slots
	          WHERE facility_id = $1 AND day_of_week = $2 AND is_active = true
	          ORDER BY start_time ASC`
	if err := r.db.SelectContext(ctx, &slots, query, facilityID, dayOfWeek); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *PostgresRepository) ListAllSlots(ctx context.Context, facilityID uuid.UUID) ([]BookingSlot, error) {
	slots := []BookingSlot{}
	query := `SELECT id, facility_id, day_of_week,
	                 to_char(start_time, 'HH24:MI') AS start_time,
	                 to_char(end_time, 'HH24:MI') AS end_time,
	                 max_bookings, is_active
	          FROM booking_slots
	          WHERE facility_id = $1 AND is_active = true
	          ORDER BY day_of_week ASC, start_time ASC`
	if err := r.db.SelectContext(ctx, &slots, query, facilityID); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *PostgresRepository) CreateSlot(ctx context.Context, s *BookingSlot) error {
	query := `INSERT INTO booking_slots (facility_id, day_of_week, start_time, end_time, max_bookings)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, is_active`
	return r.db.QueryRowxContext(ctx, query, s.FacilityID, s.DayOfWeek, s.StartTime, s.EndTime, s.MaxBookings).
		Scan(&s.ID, &s.IsActive)
}

package event

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrRsvpNotFound  = errors.New("rsvp not found")
)

const eventColumns = `id, club_id, title, description, location, start_date, end_date,
	capacity, price_cents, status, created_by, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, clubID, eventID uuid.UUID) (*Event, error) {
	var e Event
	query := `SELECT ` + eventColumns + `
	          FROM events
	          WHERE id = $1 AND club_id = $2`
	err := r.db.GetContext(ctx, &e, query, eventID, clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListUpcoming returns published future events with the attending headcount
// and the caller's own RSVP folded in, one query for the whole page.
func (r *PostgresRepository) ListUpcoming(ctx context.Context, clubID, memberID uuid.UUID) ([]EventWithRsvp, error) {
	events := []EventWithRsvp{}
	query := `SELECT e.id, e.club_id, e.title, e.description, e.location, e.start_date, e.end_date,
	                 e.capacity, e.price_cents, e.status, e.created_by, e.created_at, e.updated_at,
	                 COUNT(a.id) FILTER (WHERE a.status = 'attending') AS attending_count,
	                 mine.status AS my_rsvp_status,
	                 mine.guest_count AS my_guest_count
	          FROM events e
	          LEFT JOIN event_rsvps a ON a.event_id = e.id
	          LEFT JOIN event_rsvps mine ON mine.event_id = e.id AND mine.member_id = $2
	          WHERE e.club_id = $1 AND e.status = 'published' AND e.start_date > NOW()
	          GROUP BY e.id, mine.status, mine.guest_count
	          ORDER BY e.start_date ASC`
	if err := r.db.SelectContext(ctx, &events, query, clubID, memberID); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) SearchUpcomingByTitle(ctx context.Context, clubID uuid.UUID, q string) ([]Event, error) {
	events := []Event{}
	query := `SELECT ` + eventColumns + `
	          FROM events
	          WHERE club_id = $1 AND status = 'published' AND start_date > NOW()
	            AND title ILIKE '%' || $2 || '%'
	          ORDER BY start_date ASC`
	if err := r.db.SelectContext(ctx, &events, query, clubID, q); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *Event) error {
	query := `INSERT INTO events (club_id, title, description, location, start_date, end_date, capacity, price_cents, status, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		e.ClubID, e.Title, e.Description, e.Location, e.StartDate, e.EndDate, e.Capacity, e.PriceCents, e.Status, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// CountOtherAttending counts attending rows excluding the acting member's
// own, so re-confirming never double-counts the caller.
func (r *PostgresRepository) CountOtherAttending(ctx context.Context, eventID, excludeMemberID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*)
	          FROM event_rsvps
	          WHERE event_id = $1 AND member_id <> $2 AND status = 'attending'`
	if err := r.db.GetContext(ctx, &count, query, eventID, excludeMemberID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) UpsertRsvp(ctx context.Context, rsvp *Rsvp) error {
	query := `INSERT INTO event_rsvps (event_id, member_id, status, guest_count)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (event_id, member_id)
	          DO UPDATE SET status = EXCLUDED.status, guest_count = EXCLUDED.guest_count, updated_at = NOW()
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query, rsvp.EventID, rsvp.MemberID, rsvp.Status, rsvp.GuestCount).
		Scan(&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt)
}

func (r *PostgresRepository) ListRsvpsForMember(ctx context.Context, memberID uuid.UUID) ([]RsvpWithEvent, error) {
	rsvps := []RsvpWithEvent{}
	query := `SELECT r.id, r.event_id, r.member_id, r.status, r.guest_count, r.created_at, r.updated_at,
	                 e.title AS event_title, e.start_date AS event_start_date, e.status AS event_status
	          FROM event_rsvps r
	          JOIN events e ON e.id = r.event_id
	          WHERE r.member_id = $1 AND r.status <> 'declined' AND e.start_date > NOW()
	          ORDER BY e.start_date ASC`
	if err := r.db.SelectContext(ctx, &rsvps, query, memberID); err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (r *PostgresRepository) GetRsvp(ctx context.Context, eventID, memberID uuid.UUID) (*Rsvp, error) {
	var rsvp Rsvp
	query := `SELECT id, event_id, member_id, status, guest_count, created_at, updated_at
	          FROM event_rsvps
	          WHERE event_id = $1 AND member_id = $2`
	err := r.db.GetContext(ctx, &rsvp, query, eventID, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRsvpNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *PostgresRepository) UpdateRsvpStatus(ctx context.Context, rsvpID uuid.UUID, status RsvpStatus) (*Rsvp, error) {
	var rsvp Rsvp
	query := `UPDATE event_rsvps
	          SET status = $2, updated_at = NOW()
	          WHERE id = $1
	          RETURNING id, event_id, member_id, status, guest_count, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, rsvpID, status).StructScan(&rsvp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRsvpNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/yousef10-awadh/dev-events/internal/domain"
)

const eventColumns = `id, title, slug, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var agenda, tags pq.StringArray
	err := s.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image,
		&e.Venue, &e.Location, &e.Date, &e.Time, &e.Mode, &e.Audience,
		&agenda, &e.Organizer, &tags, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Agenda = []string(agenda)
	e.Tags = []string(tags)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var conds []string
	var args []interface{}
	n := 1
	if f.Tag != "" {
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", n))
		args = append(args, f.Tag)
		n++
	}
	if f.Mode != "" {
		conds = append(conds, fmt.Sprintf("mode = $%d", n))
		args = append(args, f.Mode)
		n++
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY event_date ASC, event_time ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, slug = $3, description = $4, overview = $5, image = $6,
			venue = $7, location = $8, event_date = $9, event_time = $10,
			mode = $11, audience = $12, agenda = $13, organizer = $14, tags = $15,
			updated_at = $16
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue,
		e.Location, e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda),
		e.Organizer, pq.Array(e.Tags), e.UpdatedAt,
	)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultEventLimit bounds List when no limit is given.
const DefaultEventLimit = 100

// Event is a command that was dispatched to the media player.
type Event struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Player     string    `json:"player"`
	Handedness string    `json:"handedness"`
	Fingers    string    `json:"fingers"`
	X          int       `json:"x"`
	Region     string    `json:"region"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommandCount is the number of events recorded for one command.
type CommandCount struct {
	Command string    `json:"command"`
	Count   int       `json:"count"`
	Last    time.Time `json:"last"`
}

// EventRepository records dispatched commands.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts e, assigning an ID and timestamp when they are unset.
func (r *EventRepository) Create(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, command, player, handedness, fingers, x, region, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Command, e.Player, e.Handedness, e.Fingers, e.X, e.Region, e.Error, e.CreatedAt,
	)
	return err
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}
	err := r.db.QueryRow(
		`SELECT id, command, player, handedness, fingers, x, region, error, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Command, &e.Player, &e.Handedness, &e.Fingers, &e.X, &e.Region, &e.Error, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns the most recent events, newest first. A non-positive limit
// means DefaultEventLimit.
func (r *EventRepository) List(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	rows, err := r.db.Query(
		`SELECT id, command, player, handedness, fingers, x, region, error, created_at
		 FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Command, &e.Player, &e.Handedness, &e.Fingers, &e.X, &e.Region, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Summary counts events per command, ordered by command name.
func (r *EventRepository) Summary() ([]CommandCount, error) {
	rows, err := r.db.Query(
		`SELECT command, COUNT(*), MAX(created_at) FROM events GROUP BY command ORDER BY command`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []CommandCount{}
	for rows.Next() {
		var c CommandCount
		var last sql.NullString
		if err := rows.Scan(&c.Command, &c.Count, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			c.Last = parseTime(last.String)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// Clear deletes every event and returns how many were removed.
func (r *EventRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// MAX() loses the column's declared type, so the driver hands back text.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

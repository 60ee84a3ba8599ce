package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/janeyeyey/mcal/internal/contract"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	solution TEXT NOT NULL,
	date TEXT NOT NULL,
	end_date TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL,
	reg_page_url TEXT NOT NULL DEFAULT '',
	viva_engage_url TEXT NOT NULL DEFAULT ''
);`

// SQLiteStore keeps events in a local SQLite database. Listing orders by
// rowid so snapshot order matches insertion order, the same contract the JSON
// file store gives same-day tie-breaking.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema in %s: %w", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Doctor(ctx context.Context) ([]contract.DoctorCheck, error) {
	checks := []contract.DoctorCheck{}
	if err := s.db.PingContext(ctx); err != nil {
		checks = append(checks, contract.DoctorCheck{Name: "database", Status: "fail", Message: err.Error()})
		return checks, err
	}
	checks = append(checks, contract.DoctorCheck{Name: "database", Status: "ok", Message: fmt.Sprintf("%s reachable", s.path)})

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		checks = append(checks, contract.DoctorCheck{Name: "events_table", Status: "fail", Message: err.Error()})
		return checks, err
	}
	checks = append(checks, contract.DoctorCheck{Name: "events_table", Status: "ok", Message: fmt.Sprintf("%d events stored", count)})
	return checks, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]contract.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, solution, date, end_date, time, location, reg_page_url, viva_engage_url
		FROM events ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []contract.Event{}
	for rows.Next() {
		var ev contract.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Solution, &ev.Date, &ev.EndDate, &ev.Time, &ev.Location, &ev.RegPageURL, &ev.VivaEngageURL); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*contract.Event, error) {
	var ev contract.Event
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, solution, date, end_date, time, location, reg_page_url, viva_engage_url
		FROM events WHERE id = ?`, id).
		Scan(&ev.ID, &ev.Title, &ev.Solution, &ev.Date, &ev.EndDate, &ev.Time, &ev.Location, &ev.RegPageURL, &ev.VivaEngageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *SQLiteStore) Add(ctx context.Context, ev contract.Event) (*contract.Event, error) {
	if err := ValidateEvent(ev); err != nil {
		return nil, err
	}
	ev.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, solution, date, end_date, time, location, reg_page_url, viva_engage_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, string(ev.Solution), ev.Date, ev.EndDate, ev.Time, ev.Location, ev.RegPageURL, ev.VivaEngageURL)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *SQLiteStore) Update(ctx context.Context, ev contract.Event) (*contract.Event, error) {
	if err := ValidateEvent(ev); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE events SET title = ?, solution = ?, date = ?, end_date = ?, time = ?, location = ?, reg_page_url = ?, viva_engage_url = ?
		WHERE id = ?`,
		ev.Title, string(ev.Solution), ev.Date, ev.EndDate, ev.Time, ev.Location, ev.RegPageURL, ev.VivaEngageURL, ev.ID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ev.ID)
	}
	return &ev, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

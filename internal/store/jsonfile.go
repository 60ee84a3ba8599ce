package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/janeyeyey/mcal/internal/contract"
)

// JSONFileStore keeps the event list in a single pretty-printed events.json
// document, the same shape the hosted calendar serves. Writes go through a
// temp file and rename so a crash never leaves a half-written document.
type JSONFileStore struct {
	Path string
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{Path: path}
}

func (s *JSONFileStore) Doctor(_ context.Context) ([]contract.DoctorCheck, error) {
	checks := []contract.DoctorCheck{}
	info, err := os.Stat(s.Path)
	if os.IsNotExist(err) {
		checks = append(checks, contract.DoctorCheck{Name: "data_file", Status: "warn", Message: fmt.Sprintf("%s does not exist; reads return an empty list, run `mcal init` to seed it", s.Path)})
		return checks, nil
	}
	if err != nil {
		checks = append(checks, contract.DoctorCheck{Name: "data_file", Status: "fail", Message: err.Error()})
		return checks, err
	}
	if info.IsDir() {
		err := fmt.Errorf("%s is a directory", s.Path)
		checks = append(checks, contract.DoctorCheck{Name: "data_file", Status: "fail", Message: err.Error()})
		return checks, err
	}
	checks = append(checks, contract.DoctorCheck{Name: "data_file", Status: "ok", Message: fmt.Sprintf("%s found", s.Path)})

	if _, err := s.read(); err != nil {
		checks = append(checks, contract.DoctorCheck{Name: "data_parse", Status: "fail", Message: err.Error()})
		return checks, err
	}
	checks = append(checks, contract.DoctorCheck{Name: "data_parse", Status: "ok", Message: "events document parses"})
	return checks, nil
}

// List returns the current snapshot. A missing file is an empty calendar, not
// an error; a present but unparseable file is an error the caller reduces to
// an empty list plus a warning.
func (s *JSONFileStore) List(_ context.Context) ([]contract.Event, error) {
	return s.read()
}

func (s *JSONFileStore) Get(ctx context.Context, id string) (*contract.Event, error) {
	events, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			ev := events[i]
			return &ev, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *JSONFileStore) Add(_ context.Context, ev contract.Event) (*contract.Event, error) {
	if err := ValidateEvent(ev); err != nil {
		return nil, err
	}
	events, err := s.read()
	if err != nil {
		return nil, err
	}
	ev.ID = uuid.NewString()
	events = append(events, ev)
	if err := s.write(events); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *JSONFileStore) Update(_ context.Context, ev contract.Event) (*contract.Event, error) {
	if err := ValidateEvent(ev); err != nil {
		return nil, err
	}
	events, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == ev.ID {
			events[i] = ev
			if err := s.write(events); err != nil {
				return nil, err
			}
			return &ev, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, ev.ID)
}

func (s *JSONFileStore) Delete(_ context.Context, id string) error {
	events, err := s.read()
	if err != nil {
		return err
	}
	kept := events[:0]
	found := false
	for _, ev := range events {
		if ev.ID == id {
			found = true
			continue
		}
		kept = append(kept, ev)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.write(kept)
}

func (s *JSONFileStore) read() ([]contract.Event, error) {
	raw, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return []contract.Event{}, nil
	}
	if err != nil {
		return nil, err
	}
	var events []contract.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if events == nil {
		events = []contract.Event{}
	}
	return events, nil
}

func (s *JSONFileStore) write(events []contract.Event) error {
	b, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

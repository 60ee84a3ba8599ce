package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/janeyeyey/mcal/internal/contract"
)

// HTTPStore reads the hosted events.json the view-only calendar is fed from.
// It is read-only by construction: the document is published through the
// repository editor, never written back over HTTP.
type HTTPStore struct {
	URL    string
	Client *http.Client
}

func NewHTTPStore(url string) *HTTPStore {
	return &HTTPStore{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPStore) ReadOnly() bool { return true }

func (s *HTTPStore) Doctor(ctx context.Context) ([]contract.DoctorCheck, error) {
	checks := []contract.DoctorCheck{}
	events, err := s.List(ctx)
	if err != nil {
		checks = append(checks, contract.DoctorCheck{Name: "events_url", Status: "fail", Message: err.Error()})
		return checks, err
	}
	checks = append(checks, contract.DoctorCheck{Name: "events_url", Status: "ok", Message: fmt.Sprintf("%s served %d events", s.URL, len(events))})
	checks = append(checks, contract.DoctorCheck{Name: "writable", Status: "warn", Message: "http store is read-only; mutations need the json or sqlite store"})
	return checks, nil
}

func (s *HTTPStore) List(ctx context.Context) ([]contract.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var events []contract.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.URL, err)
	}
	if events == nil {
		events = []contract.Event{}
	}
	return events, nil
}

func (s *HTTPStore) Get(ctx context.Context, id string) (*contract.Event, error) {
	events, err := s.List(ctx)
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

func (s *HTTPStore) Add(context.Context, contract.Event) (*contract.Event, error) {
	return nil, ErrReadOnly
}

func (s *HTTPStore) Update(context.Context, contract.Event) (*contract.Event, error) {
	return nil, ErrReadOnly
}

func (s *HTTPStore) Delete(context.Context, string) error {
	return ErrReadOnly
}

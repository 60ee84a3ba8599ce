package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/janeyeyey/mcal/internal/contract"
)

const hostedDoc = `[
  {"id":"e1","title":"Launch","solution":"Security","date":"2024-03-01","location":"Online (Teams)"},
  {"id":"e2","title":"Workshop","solution":"All CSAs","date":"2024-03-05","endDate":"2024-03-07","location":"Seoul Office"}
]`

func TestHTTPStoreListsHostedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hostedDoc))
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPStore(srv.URL + "/events.json")
	events, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 || events[1].EndDate != "2024-03-07" {
		t.Fatalf("hosted document mismatch: %v", events)
	}

	ev, err := s.Get(context.Background(), "e2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ev.Title != "Workshop" {
		t.Fatalf("Get mismatch: %+v", ev)
	}
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPStoreNon200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPStore(srv.URL + "/events.json")
	if _, err := s.List(context.Background()); err == nil {
		t.Fatalf("missing resource unexpectedly listed")
	}
}

func TestHTTPStoreParseFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPStore(srv.URL + "/events.json")
	if _, err := s.List(context.Background()); err == nil {
		t.Fatalf("unparseable resource unexpectedly listed")
	}
}

func TestHTTPStoreRefusesMutations(t *testing.T) {
	s := NewHTTPStore("http://example.invalid/events.json")
	if !IsReadOnly(s) {
		t.Fatalf("http store must report read-only")
	}
	if _, err := s.Add(context.Background(), contract.Event{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Add: expected ErrReadOnly, got %v", err)
	}
	if _, err := s.Update(context.Background(), contract.Event{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Update: expected ErrReadOnly, got %v", err)
	}
	if err := s.Delete(context.Background(), "e1"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Delete: expected ErrReadOnly, got %v", err)
	}
}

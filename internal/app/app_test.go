package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/store"
)

// fakeStore is an in-memory Store for command tests.
type fakeStore struct {
	events   []contract.Event
	readonly bool
	listErr  error
	nextID   int
}

func (f *fakeStore) ReadOnly() bool { return f.readonly }

func (f *fakeStore) Doctor(context.Context) ([]contract.DoctorCheck, error) {
	return []contract.DoctorCheck{{Name: "fake", Status: "ok", Message: "in memory"}}, nil
}

func (f *fakeStore) List(context.Context) ([]contract.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]contract.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*contract.Event, error) {
	for _, ev := range f.events {
		if ev.ID == id {
			ev := ev
			return &ev, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Add(_ context.Context, ev contract.Event) (*contract.Event, error) {
	if f.readonly {
		return nil, store.ErrReadOnly
	}
	f.nextID++
	ev.ID = fmt.Sprintf("fake-%d", f.nextID)
	f.events = append(f.events, ev)
	return &ev, nil
}

func (f *fakeStore) Update(_ context.Context, ev contract.Event) (*contract.Event, error) {
	if f.readonly {
		return nil, store.ErrReadOnly
	}
	for i := range f.events {
		if f.events[i].ID == ev.ID {
			f.events[i] = ev
			return &ev, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.readonly {
		return store.ErrReadOnly
	}
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// isolateEnv points HOME and XDG paths at temp dirs and clears every MCAL_*
// variable so a developer's own config cannot leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
	for _, k := range []string{
		"MCAL_STORE", "MCAL_DATA", "MCAL_OUTPUT", "MCAL_FIELDS",
		"MCAL_NO_INPUT", "MCAL_READ_ONLY", "MCAL_PROFILE", "MCAL_CONFIG",
		"MCAL_EDIT_URL",
	} {
		t.Setenv(k, "")
	}
}

func withFakeStore(t *testing.T, f *fakeStore) {
	t.Helper()
	orig := storeFactory
	storeFactory = func(*globalOptions) (store.Store, error) { return f, nil }
	t.Cleanup(func() { storeFactory = orig })
}

func runMcal(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCommand()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errBuf.String(), err
}

type testEnvelope struct {
	SchemaVersion string          `json:"schema_version"`
	Command       string          `json:"command"`
	Data          json.RawMessage `json:"data"`
	Meta          map[string]any  `json:"meta"`
	Warnings      []string        `json:"warnings"`
}

func decodeEnvelope(t *testing.T, raw string) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("output is not a JSON envelope: %v\n%s", err, raw)
	}
	return env
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal envelope data: %v\n%s", err, raw)
	}
}

package store

import (
	"context"
	"errors"

	"github.com/janeyeyey/mcal/internal/contract"
)

var (
	// ErrNotFound reports a missing event id.
	ErrNotFound = errors.New("event not found")
	// ErrReadOnly reports a mutation attempted against a read-only store.
	ErrReadOnly = errors.New("store is read-only")
)

// Store owns the canonical event list. The calendar engine never talks to a
// Store directly; commands read a snapshot with List and hand mutation intents
// back as whole records. Add assigns a fresh id; Update and Delete address
// records by id. Implementations validate at the mutation boundary, so records
// returned by List may still carry hand-edited oddities (unknown solution
// tags, malformed dates) that readers must tolerate.
type Store interface {
	Doctor(context.Context) ([]contract.DoctorCheck, error)
	List(context.Context) ([]contract.Event, error)
	Get(context.Context, string) (*contract.Event, error)
	Add(context.Context, contract.Event) (*contract.Event, error)
	Update(context.Context, contract.Event) (*contract.Event, error)
	Delete(context.Context, string) error
}

// ReadOnly is implemented by stores that can never accept mutations, letting
// the command layer refuse early with a clear message instead of failing at
// write time.
type ReadOnly interface {
	ReadOnly() bool
}

// IsReadOnly reports whether the store refuses mutations by construction.
func IsReadOnly(s Store) bool {
	ro, ok := s.(ReadOnly)
	return ok && ro.ReadOnly()
}

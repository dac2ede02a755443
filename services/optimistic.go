package services

import (
	"context"
	"sync"
	"time"
)

// mutationTimeout bounds the authoritative call; a timed-out mutation is
// treated exactly like a rejected one and triggers rollback.
const mutationTimeout = 10 * time.Second

// MutationFunc performs the authoritative side of a toggle.
type MutationFunc func(ctx context.Context) error

// OptimisticCoordinator implements the optimistic mutation protocol used by
// every toggle-style setting: apply the new value to the observable state
// synchronously, run the authoritative mutation in the background, and
// revert to the prior value if the mutation fails. Toggles on the same field
// key are serialized, so a rollback always restores the value the caller
// actually observed before toggling.
type OptimisticCoordinator struct {
	mu     sync.Mutex
	fields map[string]*fieldState
}

type fieldState struct {
	toggleMu sync.Mutex // serializes toggle cycles on this field
	valueMu  sync.RWMutex
	value    interface{}
	seeded   bool
}

func NewOptimisticCoordinator() *OptimisticCoordinator {
	return &OptimisticCoordinator{fields: make(map[string]*fieldState)}
}

func (co *OptimisticCoordinator) field(key string) *fieldState {
	co.mu.Lock()
	defer co.mu.Unlock()

	fs, ok := co.fields[key]
	if !ok {
		fs = &fieldState{}
		co.fields[key] = fs
	}
	return fs
}

// Seed records the authoritative current value for a field without running
// a mutation. It does not overwrite a value that is already tracked.
func (co *OptimisticCoordinator) Seed(key string, value interface{}) {
	fs := co.field(key)
	fs.valueMu.Lock()
	defer fs.valueMu.Unlock()
	if !fs.seeded {
		fs.value = value
		fs.seeded = true
	}
}

// Value returns the observable value for a field.
func (co *OptimisticCoordinator) Value(key string) (interface{}, bool) {
	fs := co.field(key)
	fs.valueMu.RLock()
	defer fs.valueMu.RUnlock()
	return fs.value, fs.seeded
}

// Toggle applies newValue to the observable state immediately, then runs
// mutate in the background. If mutate returns an error the observable state
// is reverted to the prior value. The returned channel yields the mutation
// outcome once settled; nil means the optimistic value was confirmed.
func (co *OptimisticCoordinator) Toggle(key string, newValue interface{}, mutate MutationFunc) <-chan error {
	fs := co.field(key)
	fs.toggleMu.Lock()

	fs.valueMu.Lock()
	prev := fs.value
	hadPrev := fs.seeded
	fs.value = newValue
	fs.seeded = true
	fs.valueMu.Unlock()

	settled := make(chan error, 1)
	go func() {
		defer fs.toggleMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()

		err := mutate(ctx)
		if err != nil {
			fs.valueMu.Lock()
			fs.value = prev
			fs.seeded = hadPrev
			fs.valueMu.Unlock()
		}
		settled <- err
	}()
	return settled
}

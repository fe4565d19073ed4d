package snapshot

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/store"
)

// Persister writes a snapshot after every dispatched action. Write failures
// are logged and otherwise ignored; callers of the store never see them.
type Persister struct {
	repo    Repository
	key     string
	timeout time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	lastSaved time.Time
	lastErr   error
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithKey overrides the storage key.
func WithKey(key string) PersisterOption {
	return func(p *Persister) { p.key = key }
}

// WithTimeout bounds each write.
func WithTimeout(d time.Duration) PersisterOption {
	return func(p *Persister) { p.timeout = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) PersisterOption {
	return func(p *Persister) { p.now = now }
}

// NewPersister creates a persister writing to repo.
func NewPersister(repo Repository, opts ...PersisterOption) *Persister {
	p := &Persister{
		repo:    repo,
		key:     DefaultKey,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach subscribes the persister to s and returns the unsubscribe function.
func (p *Persister) Attach(s *store.Store) func() {
	return s.Subscribe(p.OnChange)
}

// OnChange is a store.Listener.
func (p *Persister) OnChange(action store.Action, next store.State) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Save(ctx, next); err != nil {
		log.Printf("[snapshot] persist after %s failed: %v", action.Name(), err)
	}
}

// Save writes state immediately.
func (p *Persister) Save(ctx context.Context, state store.State) error {
	savedAt := p.now()
	data, err := Encode(FromState(state, savedAt))
	if err == nil {
		err = p.repo.Save(ctx, p.key, data)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
	if err == nil {
		p.lastSaved = savedAt
	}
	return err
}

// LastSaved returns the time of the most recent successful write.
func (p *Persister) LastSaved() (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSaved, !p.lastSaved.IsZero()
}

// LastError returns the error of the most recent write, if any.
func (p *Persister) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Restore reads the snapshot under key. A missing, unreadable or
// unparsable snapshot yields the default state and ok=false. Unparsable
// snapshots are deleted; snapshots from another version are left in place.
func Restore(ctx context.Context, repo Repository, key string) (state store.State, ok bool) {
	data, err := repo.Load(ctx, key)
	if err != nil {
		log.Printf("[snapshot] load %s failed, using defaults: %v", key, err)
		return store.DefaultState(), false
	}
	if data == nil {
		return store.DefaultState(), false
	}
	snap, err := Decode(data)
	if err != nil {
		log.Printf("[snapshot] %s unusable, using defaults: %v", key, err)
		var vErr *VersionError
		if !errors.As(err, &vErr) {
			if delErr := repo.Delete(ctx, key); delErr != nil {
				log.Printf("[snapshot] failed to discard %s: %v", key, delErr)
			}
		}
		return store.DefaultState(), false
	}
	return snap.State(), true
}

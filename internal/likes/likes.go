// Package likes tracks which verses the reader has marked as liked.
//
// All likes live under one namespaced storage key as a JSON object mapping a
// canonical verse reference to true. Every toggle re-reads that key before
// writing it back, so state survives restarts and other writers.
package likes

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
	"github.com/FocuswithJustin/DailyBread/core/verseref"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
)

// StorageKey is the single key holding every like.
const StorageKey = "@dailybread:likedVerses"

// ErrToggleInProgress is returned when a toggle starts while another one is
// still reading or writing storage.
var ErrToggleInProgress = errors.New("a like toggle is already in progress")

// Store is the key-value storage the tracker persists to. Get must return an
// error matching errors.ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Tracker holds the liked-verse state for one reader.
type Tracker struct {
	store   Store
	mapping canon.Mapping

	// toggling guards against re-entrant toggles.
	toggling atomic.Bool

	mu    sync.RWMutex
	liked map[string]bool
}

// New creates a Tracker. References are resolved against mapping so that
// "mateo 5:3" and "S. Mateo 5:3" share one entry; pass nil to skip that.
func New(store Store, mapping canon.Mapping) *Tracker {
	return &Tracker{
		store:   store,
		mapping: mapping,
		liked:   make(map[string]bool),
	}
}

// Load replaces the in-memory state with what storage holds. On failure the
// previous state is kept.
func (t *Tracker) Load(ctx context.Context) error {
	stored, err := t.read(ctx)
	if err != nil {
		logging.StorageError(ctx, "read", StorageKey, err)
		return err
	}
	t.mu.Lock()
	t.liked = stored
	t.mu.Unlock()
	return nil
}

// IsLiked reports whether ref is liked. Unparseable references are never liked.
func (t *Tracker) IsLiked(ref string) bool {
	key, err := t.key(ref)
	if err != nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.liked[key]
}

// Toggling reports whether a toggle is currently running.
func (t *Tracker) Toggling() bool {
	return t.toggling.Load()
}

// Toggle flips the liked state of ref and persists it. It returns the new
// state. When storage fails, the visible state is left unchanged and the
// previous state is returned alongside the error.
func (t *Tracker) Toggle(ctx context.Context, ref string) (bool, error) {
	key, err := t.key(ref)
	if err != nil {
		return false, err
	}

	if !t.toggling.CompareAndSwap(false, true) {
		return t.IsLiked(key), ErrToggleInProgress
	}
	defer t.toggling.Store(false)

	stored, err := t.read(ctx)
	if err != nil {
		logging.StorageError(ctx, "read", StorageKey, err, "ref", key)
		return t.IsLiked(key), err
	}

	liked := !stored[key]
	if liked {
		stored[key] = true
	} else {
		delete(stored, key)
	}

	if err := t.write(ctx, stored); err != nil {
		logging.StorageError(ctx, "write", StorageKey, err, "ref", key)
		return t.IsLiked(key), err
	}

	t.mu.Lock()
	t.liked = stored
	t.mu.Unlock()

	logging.DebugContext(ctx, "like_toggled", "ref", key, "liked", liked)
	return liked, nil
}

// Liked returns the liked references, sorted.
func (t *Tracker) Liked() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.liked))
	for k := range t.liked {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clear removes every like from storage.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.store.Delete(ctx, StorageKey); err != nil {
		logging.StorageError(ctx, "delete", StorageKey, err)
		return err
	}
	t.mu.Lock()
	t.liked = make(map[string]bool)
	t.mu.Unlock()
	return nil
}

func (t *Tracker) key(ref string) (string, error) {
	return verseref.Canonical(ref, t.mapping)
}

func (t *Tracker) read(ctx context.Context) (map[string]bool, error) {
	raw, err := t.store.Get(ctx, StorageKey)
	if errors.Is(err, dberrors.ErrNotFound) {
		return make(map[string]bool), nil
	}
	if err != nil {
		return nil, err
	}

	var decoded map[string]bool
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, dberrors.NewParse("JSON", StorageKey, err)
	}

	stored := make(map[string]bool, len(decoded))
	for k, v := range decoded {
		if v {
			stored[k] = true
		}
	}
	return stored, nil
}

func (t *Tracker) write(ctx context.Context, stored map[string]bool) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return dberrors.Wrap(err, "encode likes")
	}
	return t.store.Set(ctx, StorageKey, string(data))
}

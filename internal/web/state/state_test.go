package state_test

import (
	"testing"
	"time"

	storagememory "github.com/gofiber/storage/memory"

	"github.com/authgate-io/authgate/internal/web/state"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()

	return state.NewStore(storagememory.New(), 5*time.Minute)
}

func TestTakeIsSingleUse(t *testing.T) {
	store := newTestStore(t)

	entry := state.Entry{State: "tok-1", Nonce: "nonce-1"}

	if err := store.Put("key-1", entry); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := store.Take("key-1")
	if !ok {
		t.Fatal("Take() should resolve a stored entry")
	}

	if got.State != "tok-1" || got.Nonce != "nonce-1" {
		t.Errorf("unexpected entry %+v", got)
	}

	// a second take must fail: the entry was consumed
	if _, ok := store.Take("key-1"); ok {
		t.Error("Take() must consume the entry on first read")
	}
}

func TestTakeUnknownKey(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.Take("never-issued"); ok {
		t.Error("Take() on unknown key should miss")
	}

	if _, ok := store.Take(""); ok {
		t.Error("Take() on empty key should miss")
	}
}

func TestEntriesExpire(t *testing.T) {
	// the memory backend tracks expiry with second granularity
	store := state.NewStore(storagememory.New(), time.Second)

	if err := store.Put("key-exp", state.Entry{State: "tok"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	time.Sleep(2100 * time.Millisecond)

	if _, ok := store.Take("key-exp"); ok {
		t.Error("Take() should miss after the TTL elapsed")
	}
}

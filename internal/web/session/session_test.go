package session_test

import (
	"testing"
	"time"

	storagememory "github.com/gofiber/storage/memory"

	"github.com/authgate-io/authgate/internal/web/session"
)

func newTestStore(t *testing.T, ttl time.Duration) *session.Store {
	t.Helper()

	return session.NewStore(storagememory.New(), ttl)
}

func TestStoreWriteFindDelete(t *testing.T) {
	store := newTestStore(t, time.Hour)

	id, err := session.GenerateID()
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}

	data := session.Data{
		User: session.User{ID: 7, Name: "alice", Roles: []string{"general", "admin"}},
	}

	if err := store.Write(id, data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	sess, ok := store.Find(id)
	if !ok {
		t.Fatal("Find() should resolve a written session")
	}

	if sess.ID != id {
		t.Errorf("Session.ID = %q, want %q", sess.ID, id)
	}

	if sess.Data.User.Name != "alice" || sess.Data.User.ID != 7 {
		t.Errorf("unexpected user %+v", sess.Data.User)
	}

	// roles keep their order
	if len(sess.Data.User.Roles) != 2 || sess.Data.User.Roles[0] != "general" {
		t.Errorf("unexpected roles %v", sess.Data.User.Roles)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, ok := store.Find(id); ok {
		t.Error("Find() after Delete() should miss")
	}
}

func TestFindAbsenceIsNotAnError(t *testing.T) {
	store := newTestStore(t, time.Hour)

	if _, ok := store.Find("never-issued"); ok {
		t.Error("Find() on unknown id should miss")
	}

	if _, ok := store.Find(""); ok {
		t.Error("Find() on empty id should miss")
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		id, err := session.GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}

		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}

		seen[id] = true
	}
}

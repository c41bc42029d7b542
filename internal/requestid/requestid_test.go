package requestid_test

import (
	"sort"
	"testing"
	"time"

	"github.com/authgate-io/authgate/internal/requestid"
)

func TestTimestampDerivation(t *testing.T) {
	before := time.Now().Add(-time.Second)

	id, err := requestid.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	after := time.Now().Add(time.Second)

	ts := requestid.Timestamp(id)
	if ts.Before(before) || ts.After(after) {
		t.Errorf("decoded timestamp %v outside [%v, %v]", ts, before, after)
	}

	// decoding is deterministic
	if ts2 := requestid.Timestamp(id); !ts2.Equal(ts) {
		t.Errorf("Timestamp not deterministic: %v != %v", ts2, ts)
	}
}

func TestIDsAreUniqueAndSortable(t *testing.T) {
	const n = 100

	ids := make([]string, 0, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		id, err := requestid.New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		s := id.String()
		if seen[s] {
			t.Fatalf("duplicate id generated: %s", s)
		}

		seen[s] = true

		ids = append(ids, s)

		// ids issued in different milliseconds must sort by creation order
		if i == n/2 {
			time.Sleep(5 * time.Millisecond)
		}
	}

	if !sort.StringsAreSorted(ids) {
		// ids within the same millisecond may tie-break on random bits,
		// but the two halves are separated by a sleep and must be ordered
		if ids[0] > ids[n-1] {
			t.Errorf("ids do not sort by creation time")
		}
	}
}

package uniuri

import "testing"

func validateChars(t *testing.T, u string, chars []byte) {
	for _, c := range u {
		var present bool

		for _, c2 := range chars {
			if rune(c2) == c {
				present = true
			}
		}

		if !present {
			t.Fatalf("chars not allowed in %q", u)
		}
	}
}

func TestNew(t *testing.T) {
	u := New()

	if len(u) != StdLen {
		t.Fatalf("wrong length: expected %d, got %d", StdLen, len(u))
	}

	validateChars(t, u, StdChars)

	// generations are unique
	uu := New()
	if u == uu {
		t.Errorf("duplicated random string: %q and %q", u, uu)
	}
}

func TestNewLen(t *testing.T) {
	for _, n := range []int{1, StdLen, TokenLen, 65} {
		u := NewLen(n)
		if len(u) != n {
			t.Fatalf("wrong length: expected %d, got %d", n, len(u))
		}
	}
}

func TestNewLenChars(t *testing.T) {
	chars := []byte("abcdef")

	u := NewLenChars(32, chars)

	validateChars(t, u, chars)
}

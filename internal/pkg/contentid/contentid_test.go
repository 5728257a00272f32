package contentid

import "testing"

func TestNewDeterministic(t *testing.T) {
	a := New("Python Programming")
	b := New("Python Programming")
	if a != b {
		t.Fatalf("same name produced different ids: %s vs %s", a, b)
	}
	if len(a) != Length {
		t.Fatalf("id length = %d, want %d", len(a), Length)
	}
	for _, r := range a {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("id %q is not lowercase hex", a)
		}
	}
}

func TestNewDistinctNames(t *testing.T) {
	if New("Python Programming") == New("Go Programming") {
		t.Fatalf("different names collided")
	}
}

func TestFromNameTrimsWhitespace(t *testing.T) {
	if FromName("  Data Science ") != New("Data Science") {
		t.Fatalf("whitespace changed the id")
	}
}

func TestKnownVector(t *testing.T) {
	// sha256("abc") = ba7816bf8f01cfea...
	if got := New("abc"); got != "ba7816bf8f01cfea" {
		t.Fatalf("New(abc)=%s", got)
	}
}

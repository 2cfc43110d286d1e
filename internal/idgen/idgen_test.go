package idgen

import (
	"sort"
	"testing"
	"time"
)

func TestUUIDv7_Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestUUIDv7_TimeSortable(t *testing.T) {
	gen := UUIDv7()
	a := gen()
	time.Sleep(2 * time.Millisecond)
	b := gen()

	ids := []string{b, a}
	sort.Strings(ids)
	if ids[0] != a {
		t.Errorf("ids not time-ordered: %q should sort before %q", a, b)
	}
}

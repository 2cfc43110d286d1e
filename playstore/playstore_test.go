package playstore

import (
	"context"
	"errors"
	"testing"
)

// fakeSource replays a canned snapshot and records the driving calls.
type fakeSource struct {
	snapshot string
	openErr  error
	advanced int
	opened   bool
	closed   bool
}

func (f *fakeSource) OpenReviews(ctx context.Context) error {
	f.opened = true
	return f.openErr
}

func (f *fakeSource) AdvanceLoad(ctx context.Context, n int) error {
	f.advanced = n
	return nil
}

func (f *fakeSource) Snapshot(ctx context.Context) (string, error) {
	return f.snapshot, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestCollect_SortsByDateAscending(t *testing.T) {
	src := &fakeSource{snapshot: snapshotEN}
	records, err := Collect(context.Background(), src, LocaleEN, 50, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if src.advanced != 50 {
		t.Errorf("advanced: got %d, want 50", src.advanced)
	}
	if !src.closed {
		t.Error("source not closed after success")
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			t.Errorf("records[%d] out of order", i)
		}
	}
}

func TestCollect_FatalOpenClosesSource(t *testing.T) {
	src := &fakeSource{openErr: errors.New("found 2 navigation icons, need at least 3")}
	_, err := Collect(context.Background(), src, LocaleEN, 10, nil)
	if err == nil {
		t.Fatal("want error from OpenReviews")
	}
	if src.advanced != 0 {
		t.Error("advanced after fatal open")
	}
	if !src.closed {
		t.Error("source not closed after failure")
	}
}

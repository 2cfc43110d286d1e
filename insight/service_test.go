package insight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/leeguhn/crawler/internal/store"
	"github.com/leeguhn/crawler/internal/dbopen"
	"github.com/leeguhn/crawler/review"
)

func writeReviewCSV(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	data := "review,rating,date\n"
	for _, text := range numbered(n) {
		data += text + ",5,2023-07-09\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testService(t *testing.T, fc Completer) *Service {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(store.Schema))
	gen := NewGenerator(fc, Config{ChunkSize: 20})
	return NewService(gen, store.NewStore(db), "test-model")
}

func TestService_AnalyzeArchivesRun(t *testing.T) {
	fc := &fakeCompleter{}
	svc := testService(t, fc)
	ctx := context.Background()

	res, err := svc.Analyze(ctx, writeReviewCSV(t, 45), "Find issues.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.ReviewCount != 45 || res.ChunkCount != 3 {
		t.Errorf("counts: got %d/%d, want 45/3", res.ReviewCount, res.ChunkCount)
	}
	if len(fc.prompts) != 4 {
		t.Errorf("calls: got %d, want 4", len(fc.prompts))
	}
	if res.ID == "" {
		t.Fatal("run not archived")
	}

	stored, err := svc.Report(ctx, res.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if stored.Final != res.Final || stored.Model != "test-model" {
		t.Errorf("stored: got %+v", stored)
	}
}

func TestService_AnalyzeNoReviewColumn(t *testing.T) {
	svc := testService(t, &fakeCompleter{})

	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("title,body\na,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Analyze(context.Background(), path, "x")
	if !errors.Is(err, review.ErrNoReviewColumn) {
		t.Errorf("got %v, want ErrNoReviewColumn", err)
	}
}

func TestService_FailedRunLeavesArchiveIntact(t *testing.T) {
	fc := &fakeCompleter{}
	svc := testService(t, fc)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, writeReviewCSV(t, 5), "ok run")
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}

	fc.failAt = len(fc.prompts) + 1
	if _, err := svc.Analyze(ctx, writeReviewCSV(t, 5), "failing run"); err == nil {
		t.Fatal("want error from failing run")
	}

	reports, err := svc.Reports(ctx, 0)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != first.ID {
		t.Errorf("archive after failed run: got %d reports", len(reports))
	}
}

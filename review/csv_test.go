package review

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")

	four := 4
	records := []Review{
		{Text: "좋아요, 잘 쓰고 있습니다", Rating: &four, Date: day("2023-07-09")},
		{Text: "crashes on startup", Rating: nil, Date: day("2024-01-02")},
	}
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "\ufeff") {
		t.Error("output missing UTF-8 BOM signature")
	}
	if !strings.Contains(string(data), "review,rating,date") {
		t.Error("output missing header row")
	}
	if !strings.Contains(string(data), "2023-07-09") {
		t.Error("output missing ISO date")
	}

	texts, err := ReadTexts(path)
	if err != nil {
		t.Fatalf("ReadTexts: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("texts: got %d, want 2", len(texts))
	}
	if texts[0] != records[0].Text {
		t.Errorf("texts[0]: got %q, want %q", texts[0], records[0].Text)
	}
}

func TestWriteCSV_AbsentRatingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")

	if err := WriteCSV(path, []Review{{Text: "meh", Date: day("2023-01-01")}}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "meh,,2023-01-01") {
		t.Errorf("absent rating not empty: %q", string(data))
	}
}

func TestReadTexts_NoReviewColumn(t *testing.T) {
	p := filepath.Join(t.TempDir(), "other.csv")
	if err := os.WriteFile(p, []byte("title,body\nx,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTexts(p)
	if !errors.Is(err, ErrNoReviewColumn) {
		t.Errorf("got %v, want ErrNoReviewColumn", err)
	}
}

func TestReadTexts_ShortRows(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sparse.csv")
	if err := os.WriteFile(p, []byte("rating,review\n5,good\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	texts, err := ReadTexts(p)
	if err != nil {
		t.Fatalf("ReadTexts: %v", err)
	}
	if len(texts) != 2 || texts[0] != "good" || texts[1] != "" {
		t.Errorf("texts: got %v, want [good \"\"]", texts)
	}
}

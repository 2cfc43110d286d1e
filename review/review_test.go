package review

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortByDate_Ascending(t *testing.T) {
	records := []Review{
		{Text: "c", Date: day("2024-03-01")},
		{Text: "a", Date: day("2023-07-09")},
		{Text: "b", Date: day("2023-12-31")},
	}
	SortByDate(records)

	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			t.Errorf("records[%d] %s before records[%d] %s", i, records[i].Date, i-1, records[i-1].Date)
		}
	}
	if records[0].Text != "a" || records[2].Text != "c" {
		t.Errorf("order: got %s,%s,%s", records[0].Text, records[1].Text, records[2].Text)
	}
}

func TestSortByDate_StableOnTies(t *testing.T) {
	records := []Review{
		{Text: "first", Date: day("2023-07-09")},
		{Text: "second", Date: day("2023-07-09")},
		{Text: "third", Date: day("2023-07-09")},
	}
	SortByDate(records)

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if records[i].Text != w {
			t.Errorf("records[%d]: got %q, want %q", i, records[i].Text, w)
		}
	}
}

// Package review defines the review record produced by the Play Store
// collector and its flat-file persistence.
//
// A record is immutable once parsed. Datasets are stably sorted by date
// ascending before persistence, so same-day reviews keep encounter order.
package review

import (
	"sort"
	"time"
)

// Review is one extracted Play Store review.
type Review struct {
	// Text is the review body, markup-stripped and trimmed.
	Text string

	// Rating is the star rating in 1..5, nil when the accessibility
	// label could not be parsed.
	Rating *int

	// Date is the review date at day precision, normalized from the
	// surface's locale format.
	Date time.Time
}

// SortByDate orders records by date ascending, in place. The sort is
// stable: same-day records keep their original order.
func SortByDate(records []Review) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

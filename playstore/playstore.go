// Package playstore collects Google Play Store reviews: it drives the
// store page through a browser session, forces lazy-loaded reviews to
// render, and extracts text/rating/date records from a DOM snapshot.
//
// The pipeline is strictly sequential. Page-structure mismatches abort
// the whole attempt; individual reviews that fail to parse are dropped
// and extraction continues.
package playstore

import (
	"context"
	"log/slog"

	"github.com/leeguhn/crawler/review"
)

// Collect runs one extraction attempt against src: open the reviews
// panel, advance the lazy loader n times, snapshot the DOM, extract and
// sort records by date ascending. src is always closed, success or not.
func Collect(ctx context.Context, src ReviewSource, locale Locale, n int, logger *slog.Logger) ([]review.Review, error) {
	if logger == nil {
		logger = slog.Default()
	}
	defer src.Close()

	if err := src.OpenReviews(ctx); err != nil {
		return nil, err
	}
	if err := src.AdvanceLoad(ctx, n); err != nil {
		return nil, err
	}

	snapshot, err := src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records, err := ExtractReviews(snapshot, locale)
	if err != nil {
		return nil, err
	}
	logger.Info("playstore: extracted reviews", "count", len(records), "locale", string(locale))

	review.SortByDate(records)
	return records, nil
}

package playstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/leeguhn/crawler/internal/browser"
)

// arrowIconXPath locates the section-forward icons on an app page. The
// third one in document order opens the reviews panel.
const arrowIconXPath = `//i[text()="arrow_forward"]`

// ReviewSource is a live review surface: something that can open the
// reviews panel, force more lazy-loaded content to render, and hand
// back a DOM snapshot. The fragile page driving lives behind it so the
// extraction pipeline is testable with a fake.
type ReviewSource interface {
	// OpenReviews navigates to the app page and activates the reviews
	// panel. Page-structure mismatch is fatal to the attempt.
	OpenReviews(ctx context.Context) error

	// AdvanceLoad synthesizes n focus-advance key events at a fixed
	// small delay so the surface renders more reviews.
	AdvanceLoad(ctx context.Context, n int) error

	// Snapshot serializes the current DOM as HTML.
	Snapshot(ctx context.Context) (string, error)

	Close() error
}

// PageSource drives a real Play Store page through a Chrome session.
type PageSource struct {
	session *browser.Session
	url     string
	cfg     ScrapeConfig
	logger  *slog.Logger
	page    *rod.Page
}

// NewPageSource wraps an already-started browser session. The session
// itself stays owned by the caller; Close only closes the page.
func NewPageSource(session *browser.Session, url string, cfg ScrapeConfig, logger *slog.Logger) *PageSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageSource{session: session, url: url, cfg: cfg, logger: logger}
}

func (s *PageSource) OpenReviews(ctx context.Context) error {
	page, err := s.session.OpenPage(ctx, s.url)
	if err != nil {
		return err
	}
	s.page = page

	// Store pages keep rendering after load; give them a moment.
	if err := sleep(ctx, s.cfg.SettleDelay); err != nil {
		return err
	}

	// Bounded wait for the icons to exist at all.
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.IconTimeout)
	defer cancel()
	if _, err := page.Context(waitCtx).ElementX(arrowIconXPath); err != nil {
		return fmt.Errorf("playstore: review navigation icons not found: %w", err)
	}

	icons, err := page.Context(ctx).ElementsX(arrowIconXPath)
	if err != nil {
		return fmt.Errorf("playstore: locate navigation icons: %w", err)
	}
	if len(icons) < 3 {
		return fmt.Errorf("playstore: found %d navigation icons, need at least 3", len(icons))
	}

	button, err := icons[2].ElementX("./ancestor::button")
	if err != nil {
		return fmt.Errorf("playstore: reviews icon has no ancestor button: %w", err)
	}
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("playstore: activate reviews panel: %w", err)
	}
	s.logger.Debug("playstore: reviews panel activated", "url", s.url)

	return sleep(ctx, s.cfg.SettleDelay)
}

func (s *PageSource) AdvanceLoad(ctx context.Context, n int) error {
	if s.page == nil {
		return fmt.Errorf("playstore: reviews panel not open")
	}
	for i := 0; i < n; i++ {
		if err := s.page.Keyboard.Type(input.Tab); err != nil {
			return fmt.Errorf("playstore: advance focus (%d/%d): %w", i+1, n, err)
		}
		if err := sleep(ctx, s.cfg.KeyDelay); err != nil {
			return err
		}
	}
	// Let the last lazy batch render before the snapshot.
	return sleep(ctx, s.cfg.SettleDelay)
}

func (s *PageSource) Snapshot(ctx context.Context) (string, error) {
	if s.page == nil {
		return "", fmt.Errorf("playstore: reviews panel not open")
	}
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("playstore: snapshot DOM: %w", err)
	}
	return html, nil
}

func (s *PageSource) Close() error {
	if s.page != nil {
		return s.page.Close()
	}
	return nil
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

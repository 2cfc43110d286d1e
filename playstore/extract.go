package playstore

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"

	"github.com/leeguhn/crawler/review"
)

// Play Store review markup, as currently served. One container per
// review; inside it the body text, and a meta block holding the rating
// element (role="img" with a localized aria-label) and the date.
const (
	classReview = "RHo1pe"
	classText   = "h3YV2d"
	classMeta   = "Jx4nYe"
	classDate   = "bp9Aid"
)

var textPolicy = bluemonday.StrictPolicy()

// ExtractReviews parses a DOM snapshot and returns the review records it
// contains. Individual reviews that fail to parse are dropped; zero
// surviving records is not an error. Only the snapshot being unparseable
// as HTML is.
func ExtractReviews(snapshot string, locale Locale) ([]review.Review, error) {
	doc, err := xhtml.Parse(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("playstore: parse snapshot: %w", err)
	}

	var records []review.Review
	for _, container := range findByClass(doc, classReview) {
		r, err := extractOne(container, locale)
		if err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// extractOne parses a single review container. Any missing part is an
// error for this record only; an unparseable rating label is not, the
// rating is just absent.
func extractOne(container *xhtml.Node, locale Locale) (review.Review, error) {
	textNode := firstByClass(container, classText)
	if textNode == nil {
		return review.Review{}, fmt.Errorf("playstore: no text node")
	}
	text := strings.TrimSpace(xhtml.UnescapeString(textPolicy.Sanitize(renderInner(textNode))))

	meta := firstByClass(container, classMeta)
	if meta == nil {
		return review.Review{}, fmt.Errorf("playstore: no meta node")
	}

	var rating *int
	if img := firstByAttr(meta, "role", "img"); img != nil {
		rating = ParseRating(attr(img, "aria-label"), locale)
	}

	dateNode := firstByClass(meta, classDate)
	if dateNode == nil {
		return review.Review{}, fmt.Errorf("playstore: no date node")
	}
	date, err := ParseDate(strings.TrimSpace(collectText(dateNode)), locale)
	if err != nil {
		return review.Review{}, err
	}

	return review.Review{Text: text, Rating: rating, Date: date}, nil
}

// findByClass returns all element nodes carrying the class token, in
// document order.
func findByClass(root *xhtml.Node, class string) []*xhtml.Node {
	var out []*xhtml.Node
	walk(root, func(n *xhtml.Node) bool {
		if hasClass(n, class) {
			out = append(out, n)
			return false // containers don't nest
		}
		return true
	})
	return out
}

// firstByClass returns the first element with the class token, or nil.
func firstByClass(root *xhtml.Node, class string) *xhtml.Node {
	var found *xhtml.Node
	walk(root, func(n *xhtml.Node) bool {
		if found == nil && hasClass(n, class) {
			found = n
		}
		return found == nil
	})
	return found
}

// firstByAttr returns the first element whose attribute key equals val.
func firstByAttr(root *xhtml.Node, key, val string) *xhtml.Node {
	var found *xhtml.Node
	walk(root, func(n *xhtml.Node) bool {
		if found == nil && n.Type == xhtml.ElementNode && attr(n, key) == val {
			found = n
		}
		return found == nil
	})
	return found
}

// walk visits nodes depth-first. The callback returns false to skip a
// node's subtree.
func walk(n *xhtml.Node, fn func(*xhtml.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func hasClass(n *xhtml.Node, class string) bool {
	if n.Type != xhtml.ElementNode {
		return false
	}
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collectText concatenates the text nodes under n.
func collectText(n *xhtml.Node) string {
	var b strings.Builder
	walk(n, func(c *xhtml.Node) bool {
		if c.Type == xhtml.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// renderInner serializes the children of n back to HTML.
func renderInner(n *xhtml.Node) string {
	var b bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = xhtml.Render(&b, c)
	}
	return b.String()
}

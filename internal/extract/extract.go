package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"uninews/internal/news"
)

// minTitleRunes is the shortest anchor title accepted as a headline.
const minTitleRunes = 8

// Candidate is an anchor-derived news item that has not been validated or
// deduplicated yet.
type Candidate struct {
	Title string
	URL   string
	Date  time.Time
}

// Extractor turns listing-page HTML into news candidates.
type Extractor struct {
	log *zap.Logger
}

// New creates an Extractor.
func New(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract parses htmlContent and emits one candidate per surviving anchor,
// in document order. Re-extracting identical HTML yields an identical
// sequence. Malformed per-anchor data never aborts the extraction; only a
// failure to parse the document itself is returned.
func (e *Extractor) Extract(htmlContent, baseURL string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	var candidates []Candidate
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		title := anchorTitle(sel)
		if utf8.RuneCountInString(title) < minTitleRunes || !news.ContainsChinese(title) {
			return
		}

		href, _ := sel.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		link := base.ResolveReference(ref).String()

		raw, ok := findDate(sel)
		if !ok {
			return
		}
		date, err := news.ParseDate(raw)
		if err != nil {
			e.log.Warn("dropping candidate with unparseable date",
				zap.String("date", raw),
				zap.String("title", title))
			return
		}

		candidates = append(candidates, Candidate{Title: title, URL: link, Date: date})
	})

	return candidates, nil
}

// anchorTitle prefers a non-empty title attribute over the rendered anchor
// text. Entities are already decoded by the HTML parser.
func anchorTitle(sel *goquery.Selection) string {
	if v, ok := sel.Attr("title"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(sel.Text())
}

// findDate walks from the anchor up through its ancestors and returns the
// first date-looking substring. Listing pages usually keep the date in a
// sibling cell or wrapper element rather than inside the anchor itself, so
// each level's full rendered text is scanned before moving up.
func findDate(sel *goquery.Selection) (string, bool) {
	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		if raw, ok := news.RecognizeDate(cur.Text()); ok {
			return raw, true
		}
	}
	return "", false
}

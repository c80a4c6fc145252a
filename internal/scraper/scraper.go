package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tiags/rfd-radar/internal/util"
)

// Browser-like headers; RFD rejects default Go client identification.
const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// ThreadRecord is a best-effort extraction of one trending thread. Counts
// default to 0 when the expected node is absent or unparsable; the
// *Defaulted flags let the caller log the defaulting without error-driven
// control flow.
type ThreadRecord struct {
	Title            string
	URL              string
	Upvotes          int
	Replies          int
	UpvotesDefaulted bool
	RepliesDefaulted bool
}

// NetworkError wraps a failed fetch: transport failure (StatusCode 0) or a
// non-success status. It is fatal to the invocation; the next scheduled run
// is the retry mechanism.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Scraper fetches the trending listing and extracts thread records.
type Scraper interface {
	ScrapeTrending(ctx context.Context) ([]ThreadRecord, error)
}

type Client struct {
	httpClient *http.Client
	url        string
	selectors  SelectorConfig
}

func New(trendingURL string, timeout time.Duration, selectors SelectorConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        trendingURL,
		selectors:  selectors,
	}
}

// ScrapeTrending fetches the listing page and returns one record per thread
// item. An absent trending container is not an error: the page simply has
// nothing to report and the run proceeds to a harmless completion.
func (c *Client) ScrapeTrending(ctx context.Context) ([]ThreadRecord, error) {
	doc, err := c.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	sel := c.selectors.Trending
	container := doc.Find(sel.Container)
	if container.Length() == 0 {
		slog.Info("No threads found", "url", c.url)
		return nil, nil
	}

	var records []ThreadRecord
	container.Find(sel.Item).Each(func(_ int, s *goquery.Selection) {
		records = append(records, c.extractRecord(s))
	})
	slog.Info("Found threads", "count", len(records))
	return records, nil
}

func (c *Client) extractRecord(s *goquery.Selection) ThreadRecord {
	elems := c.selectors.Trending.Elements
	var rec ThreadRecord

	titleLink := s.Find(elems.TitleLink).First()
	if titleLink.Length() > 0 {
		rec.Title = strings.TrimSpace(titleLink.Text())
		if href, exists := titleLink.Attr("href"); exists {
			rec.URL = util.AbsoluteThreadURL(href)
			if normalized, err := util.NormalizeThreadURL(rec.URL); err == nil {
				rec.URL = normalized
			}
		}
	}

	rec.Upvotes, rec.UpvotesDefaulted = extractCount(s, elems.UpvoteCount)
	rec.Replies, rec.RepliesDefaulted = extractCount(s, elems.ReplyCount)
	return rec
}

func extractCount(s *goquery.Selection, selector string) (count int, defaulted bool) {
	node := s.Find(selector).First()
	if node.Length() == 0 {
		return 0, true
	}
	count, ok := util.ParseCount(node.Text())
	return count, !ok
}

func (c *Client) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", c.url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: c.url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &NetworkError{URL: c.url, StatusCode: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &NetworkError{URL: c.url, Err: err}
	}
	return doc, nil
}

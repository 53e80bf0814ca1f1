package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"trendforge/internal/logger"
	"trendforge/internal/store"
	"trendforge/internal/trace"
	"trendforge/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher reads the entries of one news source. name fills the {name}
// placeholder of the source URL; limit <= 0 means every entry.
type Fetcher interface {
	Fetch(ctx context.Context, source store.NewsSource, name string, limit int) ([]types.Headline, error)
}

// Scraper fetches RSS/Atom feeds and HTML listing pages with colly
type Scraper struct {
	timeout time.Duration
}

var _ Fetcher = (*Scraper)(nil)

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{timeout: timeout}
}

// Fetch returns headlines in document order
func (s *Scraper) Fetch(ctx context.Context, source store.NewsSource, name string, limit int) ([]types.Headline, error) {
	ctx, span := trace.StartSpan(ctx, "news.Fetch")
	defer span.End()

	target := SourceURL(source, name)
	headlines := []types.Headline{}
	full := func() bool { return limit > 0 && len(headlines) >= limit }
	add := func(title, link string) {
		title = strings.TrimSpace(title)
		link = strings.TrimSpace(link)
		if full() || title == "" {
			return
		}
		headlines = append(headlines, types.Headline{
			Title:  title,
			Link:   absoluteURL(target, link),
			Source: source.Name,
		})
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(s.timeout)

	switch source.Kind {
	case store.SourceHTML:
		sel := source.Selectors
		c.OnHTML(sel.ArticleContainer, func(e *colly.HTMLElement) {
			title := e.Text
			if sel.Title != "" {
				title = e.ChildText(sel.Title)
			}
			link := e.Attr("href")
			if sel.URL != "" {
				link = e.ChildAttr(sel.URL, "href")
			}
			add(title, link)
		})
	default:
		// RSS 2.0
		c.OnXML("//item", func(e *colly.XMLElement) {
			add(e.ChildText("title"), e.ChildText("link"))
		})
		// Atom
		c.OnXML("//entry", func(e *colly.XMLElement) {
			add(e.ChildText("title"), e.ChildAttr("link", "href"))
		})
	}

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "News source responded with error", "source", source.Name, "status", r.StatusCode, "error", err)
	})

	if err := c.Visit(target); err != nil {
		trace.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to fetch %s (%s): %w", source.Name, target, err)
	}
	c.Wait()

	logger.Debug(ctx, "News source fetched", "source", source.Name, "entries", len(headlines))
	return headlines, nil
}

// SourceURL substitutes the lower-cased asset name into the source URL
func SourceURL(source store.NewsSource, name string) string {
	return strings.ReplaceAll(source.URL, "{name}", url.PathEscape(strings.ToLower(strings.TrimSpace(name))))
}

func absoluteURL(base, link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.IsAbs() {
		return link
	}
	b, err := url.Parse(base)
	if err != nil {
		return link
	}
	return b.ResolveReference(u).String()
}

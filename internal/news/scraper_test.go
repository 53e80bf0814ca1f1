package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendforge/internal/store"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>Bitcoin climbs</title><link>https://news.example/bitcoin-climbs</link></item>
<item><title>  Ether slips  </title><link>/ether-slips</link></item>
<item><title></title><link>https://news.example/empty</link></item>
<item><title>Solana ships upgrade</title><link>https://news.example/solana</link></item>
</channel></rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Atom</title>
<entry><title>Cardano hard fork lands</title><link href="https://atom.example/cardano"/></entry>
</feed>`

const listingPage = `<html><body>
<div class="result"><h3>XRP wins in court</h3><a href="/xrp-court">read</a></div>
<div class="result"><h3>Dogecoin pumps</h3><a href="https://site.example/doge">read</a></div>
</body></html>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss/tag/bitcoin":
			w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
			w.Write([]byte(rssFeed))
		case "/atom":
			w.Header().Set("Content-Type", "application/atom+xml")
			w.Write([]byte(atomFeed))
		case "/search":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(listingPage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScraperRSS(t *testing.T) {
	srv := feedServer(t)
	src := store.NewsSource{Name: "Feed", URL: srv.URL + "/rss/tag/{name}", Kind: store.SourceRSS}

	got, err := NewScraper(2*time.Second).Fetch(context.Background(), src, "Bitcoin", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 headlines, got %d: %+v", len(got), got)
	}
	if got[0].Title != "Bitcoin climbs" || got[0].Source != "Feed" {
		t.Errorf("Expected first headline from Feed, got %+v", got[0])
	}
	if got[1].Title != "Ether slips" {
		t.Errorf("Expected trimmed title, got %q", got[1].Title)
	}
	if got[1].Link != srv.URL+"/ether-slips" {
		t.Errorf("Expected absolute link, got %q", got[1].Link)
	}
}

func TestScraperLimit(t *testing.T) {
	srv := feedServer(t)
	src := store.NewsSource{Name: "Feed", URL: srv.URL + "/rss/tag/{name}", Kind: store.SourceRSS}

	got, err := NewScraper(2*time.Second).Fetch(context.Background(), src, "bitcoin", 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 headlines, got %d", len(got))
	}
}

func TestScraperAtom(t *testing.T) {
	srv := feedServer(t)
	src := store.NewsSource{Name: "Atom", URL: srv.URL + "/atom", Kind: store.SourceRSS}

	got, err := NewScraper(2*time.Second).Fetch(context.Background(), src, "", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 || got[0].Link != "https://atom.example/cardano" {
		t.Errorf("Expected cardano entry, got %+v", got)
	}
}

func TestScraperHTML(t *testing.T) {
	srv := feedServer(t)
	src := store.NewsSource{Name: "Site", URL: srv.URL + "/search?query={name}", Kind: store.SourceHTML}
	src.Selectors.ArticleContainer = "div.result"
	src.Selectors.Title = "h3"
	src.Selectors.URL = "a"

	got, err := NewScraper(2*time.Second).Fetch(context.Background(), src, "xrp", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 headlines, got %d", len(got))
	}
	if got[0].Link != srv.URL+"/xrp-court" {
		t.Errorf("Expected absolute link, got %q", got[0].Link)
	}
}

func TestScraperErrorStatus(t *testing.T) {
	srv := feedServer(t)
	src := store.NewsSource{Name: "Missing", URL: srv.URL + "/nope", Kind: store.SourceRSS}

	if _, err := NewScraper(2*time.Second).Fetch(context.Background(), src, "", 0); err == nil {
		t.Error("Expected error for 404 source")
	}
}

func TestSourceURL(t *testing.T) {
	src := store.NewsSource{URL: "https://cointelegraph.com/rss/tag/{name}"}
	if got := SourceURL(src, " Bitcoin "); got != "https://cointelegraph.com/rss/tag/bitcoin" {
		t.Errorf("Expected lower-cased name in URL, got %s", got)
	}
	if got := SourceURL(src, "Shiba Inu"); got != "https://cointelegraph.com/rss/tag/shiba%20inu" {
		t.Errorf("Expected escaped name in URL, got %s", got)
	}
}

package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogwatch/app/article"
	"blogwatch/app/sources"
)

func testClient() *Client {
	return NewClient(&http.Client{}, "blogwatch-test/1.0")
}

func TestFeedExtract(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Example Engineering</title>
    <link>https://example.com</link>
    <item>
      <title>Dated Post</title>
      <link>https://example.com/blog/dated</link>
      <pubDate>Mon, 24 Nov 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Undated Post</title>
      <link>https://example.com/blog/undated</link>
    </item>
    <item>
      <title></title>
      <link>https://example.com/blog/untitled</link>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssData))
	}))
	defer server.Close()

	extractor := NewFeedExtractor(testClient())
	src := sources.Source{Name: "Example", FeedURL: server.URL}

	candidates, err := extractor.Extract(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates (untitled entry skipped), got %d", len(candidates))
	}

	dated := candidates[0]
	if dated.Title != "Dated Post" {
		t.Errorf("unexpected title: %q", dated.Title)
	}
	wantDate := article.Date{Year: 2025, Month: time.November, Day: 24}
	if dated.Published != wantDate {
		t.Errorf("expected published %v, got %v", wantDate, dated.Published)
	}
	if dated.Confidence != article.ConfidenceFeed {
		t.Errorf("feed dates should carry feed confidence, got %v", dated.Confidence)
	}

	undated := candidates[1]
	if !undated.Published.IsZero() {
		t.Errorf("entry without a date should stay dateless, got %v", undated.Published)
	}
	if undated.Confidence != article.ConfidenceNone {
		t.Errorf("dateless entry should have no confidence, got %v", undated.Confidence)
	}
}

func TestFeedExtractUsesUpdatedWhenPublishedMissing(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example</title>
  <entry>
    <title>Updated Only</title>
    <link href="https://example.com/blog/updated-only"/>
    <id>updated-only</id>
    <updated>2025-11-24T08:00:00Z</updated>
  </entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atomData))
	}))
	defer server.Close()

	extractor := NewFeedExtractor(testClient())
	candidates, err := extractor.Extract(context.Background(), sources.Source{Name: "Example", FeedURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	want := article.Date{Year: 2025, Month: time.November, Day: 24}
	if candidates[0].Published != want {
		t.Errorf("expected updated timestamp to be used, got %v", candidates[0].Published)
	}
}

func TestFeedExtractSourceFailures(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		extractor := NewFeedExtractor(testClient())
		if _, err := extractor.Extract(context.Background(), sources.Source{FeedURL: server.URL}); err == nil {
			t.Error("expected error for HTTP 500")
		}
	})

	t.Run("unparsable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not a feed"))
		}))
		defer server.Close()

		extractor := NewFeedExtractor(testClient())
		if _, err := extractor.Extract(context.Background(), sources.Source{FeedURL: server.URL}); err == nil {
			t.Error("expected error for unparsable feed")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		extractor := NewFeedExtractor(testClient())
		src := sources.Source{FeedURL: "http://127.0.0.1:1/feed.xml", Timeout: 1}
		if _, err := extractor.Extract(context.Background(), src); err == nil {
			t.Error("expected error for unreachable entry point")
		}
	})
}

package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogwatch/app/article"
)

func fetchPageInfo(t *testing.T, page string) PageInfo {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	info, err := NewPageMeta(testClient()).Fetch(context.Background(), server.URL, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func TestPageMetaTitlePriority(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "og:title wins",
			page: `<html><head>
  <meta property="og:title" content="OG Title">
  <meta name="twitter:title" content="Twitter Title">
  <title>Tag Title | Example</title>
</head><body><h1>H1 Title</h1></body></html>`,
			want: "OG Title",
		},
		{
			name: "twitter:title second",
			page: `<html><head>
  <meta name="twitter:title" content="Twitter Title">
  <title>Tag Title | Example</title>
</head><body><h1>H1 Title</h1></body></html>`,
			want: "Twitter Title",
		},
		{
			name: "h1 third",
			page: `<html><head><title>Tag Title | Example</title></head>
<body><h1>H1 Title</h1></body></html>`,
			want: "H1 Title",
		},
		{
			name: "title tag with suffix stripped",
			page: `<html><head><title>Tag Title | Example Site</title></head><body></body></html>`,
			want: "Tag Title",
		},
		{
			name: "title tag with dash suffix",
			page: `<html><head><title>Tag Title - Example Site</title></head><body></body></html>`,
			want: "Tag Title",
		},
		{
			name: "empty og:title ignored",
			page: `<html><head>
  <meta property="og:title" content="">
</head><body><h1>H1 Title</h1></body></html>`,
			want: "H1 Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := fetchPageInfo(t, tt.page)
			if info.Title != tt.want {
				t.Errorf("Title = %q, want %q", info.Title, tt.want)
			}
		})
	}
}

func TestPageMetaPublishedTime(t *testing.T) {
	info := fetchPageInfo(t, `<html><head>
  <meta property="article:published_time" content="2025-11-24T09:30:00Z">
</head><body></body></html>`)

	want := article.Date{Year: 2025, Month: time.November, Day: 24}
	if info.Published != want {
		t.Errorf("Published = %v, want %v", info.Published, want)
	}
	if info.Confidence != article.ConfidenceMeta {
		t.Errorf("Confidence = %v, want meta", info.Confidence)
	}
}

func TestPageMetaPublishedTextPattern(t *testing.T) {
	info := fetchPageInfo(t, `<html><body>
  <h1>Some Post</h1>
  <p>Published Nov 24, 2025</p>
  <p>Body text.</p>
</body></html>`)

	want := article.Date{Year: 2025, Month: time.November, Day: 24}
	if info.Published != want {
		t.Errorf("Published = %v, want %v", info.Published, want)
	}
	if info.Confidence != article.ConfidencePattern {
		t.Errorf("Confidence = %v, want pattern", info.Confidence)
	}
}

func TestPageMetaMetaTagBeatsTextPattern(t *testing.T) {
	info := fetchPageInfo(t, `<html><head>
  <meta property="article:published_time" content="2025-11-24T00:00:00Z">
</head><body>
  <p>Published Nov 20, 2025</p>
</body></html>`)

	want := article.Date{Year: 2025, Month: time.November, Day: 24}
	if info.Published != want {
		t.Errorf("meta tag should be preferred over the text pattern, got %v", info.Published)
	}
}

func TestPageMetaNoDate(t *testing.T) {
	info := fetchPageInfo(t, `<html><body><h1>Dateless</h1></body></html>`)

	if !info.Published.IsZero() {
		t.Errorf("expected unknown date, got %v", info.Published)
	}
	if info.Confidence != article.ConfidenceNone {
		t.Errorf("Confidence = %v, want none", info.Confidence)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://example.com/post/", "https://example.com/post"},
		{"https://example.com/post?utm_source=x", "https://example.com/post"},
		{"https://example.com/post#section", "https://example.com/post"},
		{"https://example.com/post/?a=1#b", "https://example.com/post"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.raw); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://example.com", "/blog/post", "https://example.com/blog/post"},
		{"https://example.com/", "/blog/post", "https://example.com/blog/post"},
		{"https://example.com", "https://other.com/post", "https://other.com/post"},
		{"https://example.com", "", ""},
	}

	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Startup News</title>
    <item>
      <title>Zypp Electric raises $3M</title>
      <link>https://example.com/zypp</link>
      <description>&lt;p&gt;EV fleet startup &lt;b&gt;Zypp&lt;/b&gt; raised a seed round.&lt;/p&gt;</description>
      <pubDate>Fri, 05 Jan 2024 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Missing link item</title>
      <description>No link, must be dropped.</description>
    </item>
    <item>
      <title></title>
      <link>https://example.com/untitled</link>
    </item>
  </channel>
</rss>`

func TestFetchParsesAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	articles, err := fetcher.Fetch(context.Background(), Feed{
		Name:     "startup-news",
		URL:      server.URL,
		Priority: 5,
	})
	require.NoError(t, err)

	require.Len(t, articles, 1, "items missing title or link are dropped")
	article := articles[0]
	assert.Equal(t, "Zypp Electric raises $3M", article.Title)
	assert.Equal(t, "https://example.com/zypp", article.Link)
	assert.Equal(t, "EV fleet startup Zypp raised a seed round.", article.Description)
	assert.Equal(t, "startup-news", article.Source)
	assert.Equal(t, 5, article.SourcePriority)
	assert.Equal(t, 2024, article.Published.Year())
}

func TestFetchErrorWrapsFeedError(t *testing.T) {
	fetcher := NewFetcher(time.Second)
	_, err := fetcher.Fetch(context.Background(), Feed{
		Name: "dead",
		URL:  "http://127.0.0.1:1/feed.xml",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dead")
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"A &amp; B", "A & B"},
		{"  spaced \n\t out  ", "spaced out"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "input %q", tt.in)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := `feeds:
  - name: techcrunch
    url: https://techcrunch.com/feed/
    priority: 8
  - name: inc42
    url: https://inc42.com/feed/
    priority: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	feeds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Equal(t, "techcrunch", feeds[0].Name)
	assert.Equal(t, 8, feeds[0].Priority)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// Package feeds ingests configured RSS/Atom feeds into articles.
// Feeds are visited one at a time; one feed's failure never aborts the
// batch.
package feeds

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mmcdole/gofeed"

	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/logging"
)

// Feed is one configured news source.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`

	// Priority is the trust rank used to arbitrate merges. Higher is
	// more trusted.
	Priority int `yaml:"priority"`
}

// feedsFile is the YAML shape of the feeds configuration file.
type feedsFile struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFile reads the feed list from a YAML file.
func LoadFile(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "feeds",
			Message:   "feeds file unreadable",
			Err:       err,
		}
	}

	var f feedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &errors.ConfigError{
			Component: "feeds",
			Message:   "feeds file not valid YAML",
			Err:       err,
		}
	}
	return f.Feeds, nil
}

// Fetcher retrieves and parses one feed at a time.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "fundradar/1.0"
	return &Fetcher{parser: parser}
}

// Fetch retrieves a feed and converts its items to articles. Items
// lacking a title or link are dropped here, upstream of the
// classifier.
func (f *Fetcher) Fetch(ctx context.Context, feed Feed) ([]funding.Article, error) {
	parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, &errors.FeedError{Feed: feed.Name, URL: feed.URL, Err: err}
	}

	articles := make([]funding.Article, 0, len(parsed.Items))
	dropped := 0
	for _, item := range parsed.Items {
		if item.Title == "" || item.Link == "" {
			dropped++
			continue
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		articles = append(articles, funding.Article{
			Title:          CleanText(item.Title),
			Link:           item.Link,
			Description:    CleanText(item.Description),
			Published:      published,
			Source:         feed.Name,
			SourcePriority: feed.Priority,
		})
	}

	if dropped > 0 {
		logging.FromContext(ctx).Debug().
			Str("feed", feed.Name).
			Int("dropped", dropped).
			Msg("Dropped items missing title or link")
	}

	return articles, nil
}

// Package feed downloads and parses the social feed that announces new
// game content.
package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"fgo_bot/internal/model"
	"fgo_bot/internal/timeutil"
)

// pageSize bounds how many of the newest posts a single poll inspects.
const pageSize = 5

// repostPrefixes mark reposts and replies in the feed rendering of the
// account's timeline; neither is a new announcement.
var repostPrefixes = []string{"RT by ", "R to "}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads the account feed and returns its newest posts.
type Fetcher struct {
	client  HTTPClient
	url     string
	timeout time.Duration
}

// New creates a Fetcher for the given feed URL.
func New(client HTTPClient, url string) *Fetcher {
	return &Fetcher{
		client:  client,
		url:     url,
		timeout: 30 * time.Second,
	}
}

// Latest fetches the feed and returns up to pageSize posts, newest first,
// with reposts and replies excluded.
func (f *Fetcher) Latest(ctx context.Context) ([]model.FeedPost, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "FGORegionBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var posts []model.FeedPost
	for _, item := range parsed.Items {
		if isRepost(item.Title) {
			continue
		}
		posts = append(posts, model.FeedPost{
			ID:        postID(item),
			Title:     item.Title,
			Link:      item.Link,
			Published: publishedAt(item),
		})
		if len(posts) == pageSize {
			break
		}
	}
	return posts, nil
}

func isRepost(title string) bool {
	for _, p := range repostPrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

// postID returns the post's GUID, falling back to a hash of title+link
// for feeds that omit GUIDs.
func postID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	h := sha256.Sum256([]byte(item.Title + "|" + item.Link))
	return fmt.Sprintf("sha256:%x", h[:16])
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if t, err := timeutil.ParseISO(item.Published); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

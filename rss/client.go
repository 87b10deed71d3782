package rss

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"

	"github.com/etnz/idxwatch"
)

const feedUserAgent = "Mozilla/5.0 (compatible; idxwatch/1.0)"

// Client fetches configured news feeds.
type Client struct {
	http *http.Client
}

// NewClient builds a feed client around the given http.Client, or the
// default one when nil.
func NewClient(h *http.Client) *Client {
	if h == nil {
		h = http.DefaultClient
	}
	return &Client{http: h}
}

// Fetch downloads and parses one feed.
func (c *Client) Fetch(ctx context.Context, addr string) ([]idxwatch.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", feedUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch feed %q: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch feed %q: %v", addr, resp.Status)
	}

	items, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse feed %q: %w", addr, err)
	}
	return items, nil
}

// FetchAll downloads every feed concurrently and merges the results,
// newest first. A feed that fails is logged and skipped, one broken source
// must not blank the whole news pane.
func (c *Client) FetchAll(ctx context.Context, addrs []string) []idxwatch.NewsItem {
	var (
		mu  sync.Mutex
		all []idxwatch.NewsItem
		wg  sync.WaitGroup
	)
	for _, addr := range addrs {
		addr := addr
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := c.Fetch(ctx, addr)
			if err != nil {
				log.Printf("skipping feed: %v", err)
				return
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	slices.SortStableFunc(all, func(a, b idxwatch.NewsItem) int {
		switch {
		case a.PublishedAt > b.PublishedAt:
			return -1
		case a.PublishedAt < b.PublishedAt:
			return 1
		default:
			return 0
		}
	})
	return all
}

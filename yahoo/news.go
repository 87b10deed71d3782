package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/etnz/idxwatch"
)

// newsCount is what one detail pane can show.
const newsCount = 8

type searchEnvelope struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Link                string `json:"link"`
	} `json:"news"`
}

// News fetches recent articles mentioning the symbol through the Yahoo
// search endpoint. Articles without a title are dropped.
func (c *Client) News(ctx context.Context, sym idxwatch.Symbol) ([]idxwatch.NewsItem, error) {
	params := url.Values{}
	params.Set("q", sym.ToProvider())
	params.Set("newsCount", strconv.Itoa(newsCount))
	params.Set("quotesCount", "0")

	var wire searchEnvelope
	if err := c.jget(ctx, c.searchURL+"?"+params.Encode(), &wire); err != nil {
		return nil, fmt.Errorf("cannot retrieve news for %q: %w", sym, err)
	}

	items := make([]idxwatch.NewsItem, 0, len(wire.News))
	for _, n := range wire.News {
		if n.Title == "" {
			continue
		}
		publisher := n.Publisher
		if publisher == "" {
			publisher = "Unknown"
		}
		items = append(items, idxwatch.NewsItem{
			Title:       n.Title,
			Publisher:   publisher,
			PublishedAt: n.ProviderPublishTime,
			URL:         n.Link,
		})
	}
	return items, nil
}

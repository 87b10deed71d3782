// Package rss pulls financial news out of RSS and Atom feeds, as a
// complement to the provider news endpoint which only knows about articles
// Yahoo indexed.
package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/idxwatch"
)

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	Link    struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Published string `xml:"published"`
	Updated   string `xml:"updated"`
}

// Parse reads one feed document, RSS 2.0 or Atom, into news items. The
// feed title becomes the publisher of every item.
func Parse(r io.Reader) ([]idxwatch.NewsItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rf rssFeed
	if err := xml.Unmarshal(data, &rf); err == nil && len(rf.Channel.Items) > 0 {
		publisher := feedPublisher(rf.Channel.Title)
		items := make([]idxwatch.NewsItem, 0, len(rf.Channel.Items))
		for _, it := range rf.Channel.Items {
			items = append(items, idxwatch.NewsItem{
				Title:       itemTitle(it.Title),
				Publisher:   publisher,
				PublishedAt: parseDate(it.PubDate),
				URL:         strings.TrimSpace(it.Link),
				Summary:     StripHTML(it.Description),
			})
		}
		return items, nil
	}

	var af atomFeed
	if err := xml.Unmarshal(data, &af); err == nil && len(af.Entries) > 0 {
		publisher := feedPublisher(af.Title)
		items := make([]idxwatch.NewsItem, 0, len(af.Entries))
		for _, e := range af.Entries {
			published := e.Published
			if published == "" {
				published = e.Updated
			}
			items = append(items, idxwatch.NewsItem{
				Title:       itemTitle(e.Title),
				Publisher:   publisher,
				PublishedAt: parseDate(published),
				URL:         strings.TrimSpace(e.Link.Href),
				Summary:     StripHTML(e.Summary),
			})
		}
		return items, nil
	}

	return nil, fmt.Errorf("not a recognizable RSS or Atom feed")
}

func feedPublisher(title string) string {
	title = StripHTML(title)
	if title == "" {
		return "Unknown"
	}
	return title
}

func itemTitle(title string) string {
	title = StripHTML(title)
	if title == "" {
		return "(no title)"
	}
	return title
}

// feedDateLayouts covers the pubDate dialects seen in the wild.
var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// parseDate returns the Unix timestamp of a feed date, or 0 when the date
// is missing or in a dialect we do not know.
func parseDate(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}

// StripHTML flattens markup that feeds love to stuff into titles and
// descriptions down to plain text.
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for entity, repl := range map[string]string{
		"&amp;": "&", "&lt;": "<", "&gt;": ">", "&quot;": `"`, "&#39;": "'", "&apos;": "'", "&nbsp;": " ",
	} {
		out = strings.ReplaceAll(out, entity, repl)
	}
	return strings.TrimSpace(out)
}

// TitleMatches reports whether the title mentions the ticker as a whole
// word. A bare substring check is useless for tickers like "GOTO" that
// appear inside ordinary words.
func TitleMatches(title string, sym idxwatch.Symbol) bool {
	ticker := string(sym)
	if ticker == "" {
		return false
	}
	upper := strings.ToUpper(title)
	for start := 0; ; {
		pos := strings.Index(upper[start:], ticker)
		if pos < 0 {
			return false
		}
		abs := start + pos
		end := abs + len(ticker)
		beforeOK := abs == 0 || !isASCIILetter(upper[abs-1])
		afterOK := end >= len(upper) || !isASCIILetter(upper[end])
		if beforeOK && afterOK {
			return true
		}
		start = abs + 1
	}
}

func isASCIILetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

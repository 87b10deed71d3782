package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/idxwatch"
)

// NetworkError wraps a transport failure or an unreadable response. Unlike
// AuthError it is transient: the next refresh cycle may well succeed.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client calls the Yahoo Finance quote, chart and search endpoints through
// a shared Session.
type Client struct {
	session *Session

	quoteURL  string
	chartURL  string
	searchURL string
}

// NewClient builds a client with a fresh session against the production
// endpoints.
func NewClient() *Client {
	return &Client{
		session:   NewSession(),
		quoteURL:  quoteURL,
		chartURL:  chartURL,
		searchURL: searchURL,
	}
}

// Session exposes the underlying session, mostly for state reporting.
func (c *Client) Session() *Session { return c.session }

func (c *Client) get(ctx context.Context, addr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://finance.yahoo.com/")
	resp, err := c.session.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: addr, Err: err}
	}
	return resp, nil
}

// jget performs a GET and unmarshals the JSON body into data.
func (c *Client) jget(ctx context.Context, addr string, data any) error {
	resp, err := c.get(ctx, addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: addr, Err: err}
	}
	return json.Unmarshal(body, data)
}

// Quotes fetches a batch of quotes in one call. The composite index is
// always fetched alongside, whether or not it was asked for, so the header
// line of the display never goes stale. Requested symbols Yahoo does not
// return come back as absent results rather than errors.
//
// A 401 invalidates the session and the call is retried once with a fresh
// crumb; a second 401 surfaces as *AuthError.
func (c *Client) Quotes(ctx context.Context, symbols []idxwatch.Symbol) (idxwatch.Batch, error) {
	requested := make([]idxwatch.Symbol, 0, len(symbols)+1)
	seen := make(map[idxwatch.Symbol]bool, len(symbols)+1)
	for _, sym := range append([]idxwatch.Symbol{idxwatch.IndexSymbol}, symbols...) {
		if !seen[sym] {
			seen[sym] = true
			requested = append(requested, sym)
		}
	}

	provider := make([]string, len(requested))
	for i, sym := range requested {
		provider[i] = sym.ToProvider()
	}

	crumb, err := c.session.Crumb(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.getQuotes(ctx, provider, crumb)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.session.Invalidate()
		crumb, err = c.session.Crumb(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.getQuotes(ctx, provider, crumb)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			c.session.Invalidate()
			return nil, &AuthError{Status: http.StatusUnauthorized, Reason: "quote request rejected twice"}
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: c.quoteURL, Err: err}
	}
	var wire quoteEnvelope
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("cannot parse quote response: %w", err)
	}
	if wire.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", string(wire.QuoteResponse.Error))
	}

	batch := make(idxwatch.Batch, len(requested))
	for _, sym := range requested {
		batch[sym] = idxwatch.Absent()
	}
	for _, res := range wire.QuoteResponse.Result {
		q := res.quote()
		batch[q.Symbol] = idxwatch.Found(q)
	}
	return batch, nil
}

func (c *Client) getQuotes(ctx context.Context, symbols []string, crumb string) (*http.Response, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("crumb", crumb)
	return c.get(ctx, c.quoteURL+"?"+params.Encode())
}

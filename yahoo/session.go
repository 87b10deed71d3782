// Package yahoo fetches Indonesian stock quotes, charts and news from the
// Yahoo Finance public endpoints. Quote requests need a session: Yahoo
// hands out a cookie set plus a "crumb" token scraped from its landing
// page, and rejects quote calls whose crumb went stale with a 401.
package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
)

const (
	baseURL   = "https://finance.yahoo.com"
	quoteURL  = "https://query1.finance.yahoo.com/v7/finance/quote"
	chartURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	searchURL = "https://query2.finance.yahoo.com/v1/finance/search"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// SessionState tracks where a session is in its credential lifecycle.
type SessionState int

const (
	Unauthenticated SessionState = iota // no crumb yet
	Authenticating                      // landing-page fetch in flight
	Authenticated                       // crumb on hand
	Expired                             // crumb rejected, needs a refresh
)

func (s SessionState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// AuthError means the session could not be established, or was rejected
// even after a fresh crumb. It is terminal for the attempt: retrying with
// the same session will not help until Yahoo serves a working crumb again.
type AuthError struct {
	Status int    // HTTP status when the rejection came from a response
	Reason string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("yahoo authentication failed (HTTP %d): %s", e.Status, e.Reason)
	}
	return "yahoo authentication failed: " + e.Reason
}

// A Session owns the cookie jar and crumb shared by all Yahoo API calls.
// It is safe for concurrent use.
type Session struct {
	client  *http.Client
	baseURL string

	mu    sync.Mutex
	crumb string
	state SessionState
}

// NewSession builds a session around a fresh cookie-jar client.
func NewSession() *Session {
	jar, _ := cookiejar.New(nil)
	return &Session{
		client:  &http.Client{Jar: jar},
		baseURL: baseURL,
	}
}

// State reports the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Invalidate marks the crumb stale. The next Crumb call fetches a new one.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crumb = ""
	s.state = Expired
}

// Crumb returns the cached crumb, authenticating first if the session is
// unauthenticated or expired.
func (s *Session) Crumb(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticated && s.crumb != "" {
		return s.crumb, nil
	}

	s.state = Authenticating
	crumb, err := s.fetchCrumb(ctx)
	if err != nil {
		s.state = Unauthenticated
		return "", err
	}
	s.crumb = crumb
	s.state = Authenticated
	return crumb, nil
}

// fetchCrumb visits the landing page to collect cookies and scrapes the
// crumb token out of the embedded page state. Caller holds s.mu.
func (s *Session) fetchCrumb(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: s.baseURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Status: resp.StatusCode, Reason: "landing page refused"}
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: s.baseURL, Err: err}
	}
	crumb, ok := extractCrumb(string(html))
	if !ok {
		return "", &AuthError{Reason: "no crumb in landing page"}
	}
	return crumb, nil
}

// extractCrumb scans the page for the crumb token. Yahoo has shipped it
// under two shapes over the years, try both.
func extractCrumb(html string) (string, bool) {
	for _, marker := range []string{`"CrumbStore":{"crumb":"`, `"crumb":"`} {
		start := strings.Index(html, marker)
		if start < 0 {
			continue
		}
		start += len(marker)
		end := strings.IndexByte(html[start:], '"')
		if end <= 0 {
			continue
		}
		return html[start : start+end], true
	}
	return "", false
}

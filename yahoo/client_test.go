package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/idxwatch"
	"github.com/shopspring/decimal"
)

// fakeYahoo serves the landing page, quote, chart and search endpoints from
// one test server.
type fakeYahoo struct {
	crumb      string
	quotes     http.HandlerFunc
	authCount  int
	quoteCalls int
}

func (f *fakeYahoo) client(t *testing.T) (*Client, func()) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.authCount++
		fmt.Fprintf(w, `<script>{"crumb":%q}</script>`, f.crumb)
	})
	mux.HandleFunc("/v7/finance/quote", func(w http.ResponseWriter, r *http.Request) {
		f.quoteCalls++
		f.quotes(w, r)
	})
	srv := httptest.NewServer(mux)

	session := &Session{client: srv.Client(), baseURL: srv.URL}
	c := &Client{
		session:   session,
		quoteURL:  srv.URL + "/v7/finance/quote",
		chartURL:  srv.URL + "/v8/finance/chart",
		searchURL: srv.URL + "/v1/finance/search",
	}
	return c, srv.Close
}

func quoteBody(symbols ...string) string {
	var results []string
	for _, s := range symbols {
		results = append(results, fmt.Sprintf(
			`{"symbol":%q,"shortName":"Name of %s","regularMarketPrice":9000,"regularMarketChange":125.5,"regularMarketChangePercent":1.41,"regularMarketVolume":1234567}`,
			s, s))
	}
	return fmt.Sprintf(`{"quoteResponse":{"result":[%s],"error":null}}`, strings.Join(results, ","))
}

func TestQuotesBatch(t *testing.T) {
	f := &fakeYahoo{crumb: "tok"}
	f.quotes = func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("crumb"); got != "tok" {
			t.Errorf("crumb = %q, want tok", got)
		}
		symbols := r.URL.Query().Get("symbols")
		// The composite index rides along without a provider suffix.
		if !strings.Contains(symbols, "^JKSE") || !strings.Contains(symbols, "BBCA.JK") {
			t.Errorf("symbols = %q", symbols)
		}
		if strings.Contains(symbols, "^JKSE.JK") {
			t.Errorf("index must not get a suffix: %q", symbols)
		}
		fmt.Fprint(w, quoteBody("BBCA.JK", "^JKSE"))
	}
	c, done := f.client(t)
	defer done()

	batch, err := c.Quotes(context.Background(), []idxwatch.Symbol{"BBCA", "GONE"})
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}

	res, ok := batch["BBCA"]
	if !ok || res.IsAbsent() {
		t.Fatalf("BBCA missing from batch: %v", batch)
	}
	if !res.Quote.Price.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("price = %v", res.Quote.Price)
	}
	if res.Quote.ChangePercent != 1.41 {
		t.Errorf("change percent = %v", res.Quote.ChangePercent)
	}

	if res, ok := batch[idxwatch.IndexSymbol]; !ok || res.IsAbsent() {
		t.Error("index quote must always be fetched")
	}
	if res, ok := batch["GONE"]; !ok || !res.IsAbsent() {
		t.Error("unreturned symbol must come back absent, not missing")
	}
}

func TestQuotesRetriesOnceOn401(t *testing.T) {
	f := &fakeYahoo{crumb: "fresh"}
	f.quotes = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("crumb") != "fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, quoteBody("BBCA.JK", "^JKSE"))
	}
	c, done := f.client(t)
	defer done()

	// Seed a stale crumb so the first quote call is rejected.
	c.session.crumb = "stale"
	c.session.state = Authenticated

	batch, err := c.Quotes(context.Background(), []idxwatch.Symbol{"BBCA"})
	if err != nil {
		t.Fatalf("Quotes after retry: %v", err)
	}
	if f.quoteCalls != 2 {
		t.Errorf("quote calls = %d, want 2", f.quoteCalls)
	}
	if f.authCount != 1 {
		t.Errorf("auth fetches = %d, want 1", f.authCount)
	}
	if res := batch["BBCA"]; res.IsAbsent() {
		t.Error("retry must deliver the quote")
	}
	if c.session.State() != Authenticated {
		t.Errorf("session state = %v", c.session.State())
	}
}

func TestQuotesSecondUnauthorizedIsFatal(t *testing.T) {
	f := &fakeYahoo{crumb: "tok"}
	f.quotes = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	c, done := f.client(t)
	defer done()

	_, err := c.Quotes(context.Background(), []idxwatch.Symbol{"BBCA"})
	var aerr *AuthError
	if !errors.As(err, &aerr) {
		t.Fatalf("want *AuthError, got %v", err)
	}
	if f.quoteCalls != 2 {
		t.Errorf("quote calls = %d, want exactly one retry", f.quoteCalls)
	}
	if c.session.State() != Expired {
		t.Errorf("session state = %v, want expired", c.session.State())
	}
}

func TestQuotesTransportError(t *testing.T) {
	f := &fakeYahoo{crumb: "tok"}
	f.quotes = func(w http.ResponseWriter, r *http.Request) {}
	c, done := f.client(t)
	done() // server gone before the call

	_, err := c.Quotes(context.Background(), []idxwatch.Symbol{"BBCA"})
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("want *NetworkError, got %v", err)
	}
}

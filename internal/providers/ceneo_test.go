// README: Ceneo client tests against a local HTTP stub.
package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// ceneoStub fakes both the token endpoint and GetProducts.
type ceneoStub struct {
	tokenCalls  int
	searchCalls int
	lastSearch  *http.Request
	results     string
}

func (s *ceneoStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/AuthorizationService.svc/GetToken", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls++
		if r.Header.Get("Authorization") != "Basic test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("access_token", "tok-123")
		w.Header().Set("expires_in", "900")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/PartnerService.svc/GetProducts", func(w http.ResponseWriter, r *http.Request) {
		s.searchCalls++
		s.lastSearch = r.Clone(context.Background())
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body := s.results
		if body == "" {
			body = `{"d":{"results":[]}}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	return mux
}

func newCeneoTestClient(t *testing.T, stub *ceneoStub) *CeneoClient {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return NewCeneoClient("test-api-key", "partner42", srv.URL)
}

func TestCeneoSearch(t *testing.T) {
	stub := &ceneoStub{results: `{"d":{"results":[
		{"Id": 111, "Name": "Kubek Contigo", "LowestPrice": 89.99, "Popularity": 2,
		 "Rating": 4.5, "ProductReviews": 120, "ManufacturerName": "Contigo",
		 "Url": "https://ceneo.pl/111", "ThumbnailUrl": "https://ceneostatic.pl/t/111.jpg"},
		{"Id": 222, "Name": "Kubek zwykły", "LowestPrice": 19.99, "Popularity": 1}
	]}}`}
	c := newCeneoTestClient(t, stub)

	got, err := c.Search(context.Background(), "kubek termiczny", SearchOptions{MaxPrice: 150, Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	p := got[0]
	if p.ID != "111" || p.Name != "Kubek Contigo" || p.Price.Amount != 89.99 {
		t.Errorf("unexpected product: %+v", p)
	}
	if p.Price.Currency != "PLN" {
		t.Errorf("expected PLN, got %q", p.Price.Currency)
	}
	if p.URL != "https://ceneo.pl/111#pid=partner42" {
		t.Errorf("affiliate fragment missing: %q", p.URL)
	}

	raw := stub.lastSearch.URL.RawQuery
	for _, want := range []string{
		"searchtext='kubek%20termiczny'",
		"highestPrice=150m",
		"pageSize=10",
		"$orderby=Popularity%20asc",
		"$format=json",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("search query missing %q in %q", want, raw)
		}
	}
}

func TestCeneoTokenCaching(t *testing.T) {
	stub := &ceneoStub{}
	c := newCeneoTestClient(t, stub)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "kubek", SearchOptions{}); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if stub.tokenCalls != 1 {
		t.Errorf("expected 1 token exchange, got %d", stub.tokenCalls)
	}

	// Within a minute of expiry the token is refreshed proactively.
	now = now.Add(900*time.Second - 30*time.Second)
	if _, err := c.Search(context.Background(), "kubek", SearchOptions{}); err != nil {
		t.Fatalf("search after expiry: %v", err)
	}
	if stub.tokenCalls != 2 {
		t.Errorf("expected token refresh near expiry, got %d exchanges", stub.tokenCalls)
	}
}

func TestCeneoAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewCeneoClient("bad-key", "", srv.URL)
	_, err := c.Search(context.Background(), "kubek", SearchOptions{})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestCeneoMissingTokenHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK) // 200 but no token headers
	}))
	defer srv.Close()

	c := NewCeneoClient("key", "", srv.URL)
	_, err := c.Search(context.Background(), "kubek", SearchOptions{})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestCeneoNotConfigured(t *testing.T) {
	c := NewCeneoClient("", "", "https://example.invalid")
	_, err := c.Search(context.Background(), "kubek", SearchOptions{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCeneoAffiliateURL(t *testing.T) {
	c := NewCeneoClient("key", "partner42", "https://example.invalid")
	cases := []struct {
		in, want string
	}{
		{"https://ceneo.pl/111", "https://ceneo.pl/111#pid=partner42"},
		{"https://ceneo.pl/111#pid=old", "https://ceneo.pl/111#pid=partner42"},
	}
	for _, tc := range cases {
		if got := c.AffiliateURL(tc.in); got != tc.want {
			t.Errorf("AffiliateURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	noPartner := NewCeneoClient("key", "", "https://example.invalid")
	if got := noPartner.AffiliateURL("https://ceneo.pl/111#pid=old"); got != "https://ceneo.pl/111" {
		t.Errorf("expected fragment stripped without partner id, got %q", got)
	}
}

func TestBetterRanked(t *testing.T) {
	cases := []struct {
		name string
		a, b Product
		want bool
	}{
		{"lower rank wins", Product{Popularity: 1}, Product{Popularity: 5}, true},
		{"higher rank loses", Product{Popularity: 5}, Product{Popularity: 1}, false},
		{"unranked loses to ranked", Product{}, Product{Popularity: 9}, false},
		{"rating breaks rank tie", Product{Popularity: 2, Rating: 4.9}, Product{Popularity: 2, Rating: 4.1}, true},
		{"reviews break rating tie", Product{Popularity: 2, Rating: 4.5, Reviews: 300}, Product{Popularity: 2, Rating: 4.5, Reviews: 10}, true},
	}
	for _, tc := range cases {
		if got := BetterRanked(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: BetterRanked = %v, want %v", tc.name, got, tc.want)
		}
	}
}

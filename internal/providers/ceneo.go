// README: Ceneo partner API client (header-token OAuth, OData search).
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// tokenExpiryBuffer keeps us from using a token that is about to lapse
// mid-request (Ceneo tokens live ~15 minutes).
const tokenExpiryBuffer = 60 * time.Second

// CeneoClient talks to the Ceneo partner API. Ceneo's token endpoint is
// non-standard: a GET with the API key as Basic credentials, returning
// the bearer token in the response HEADERS rather than the body.
type CeneoClient struct {
	apiKey    string
	partnerID string
	baseURL   string
	http      *http.Client
	now       func() time.Time

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

// NewCeneoClient builds a client. An empty apiKey yields a client whose
// calls fail with ErrNotConfigured, keeping startup crash-free.
func NewCeneoClient(apiKey, partnerID, baseURL string) *CeneoClient {
	return &CeneoClient{
		apiKey:    apiKey,
		partnerID: partnerID,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		now:       time.Now,
	}
}

func (c *CeneoClient) Name() string { return "ceneo" }

type ceneoProduct struct {
	Id              int64   `json:"Id"`
	Name            string  `json:"Name"`
	CategoryId      int64   `json:"CategoryId"`
	LowestPrice     float64 `json:"LowestPrice"`
	HighestPrice    float64 `json:"HighestPrice"`
	Shops           int     `json:"Shops"`
	Rating          float64 `json:"Rating"`
	ProductReviews  int     `json:"ProductReviews"`
	ManufacturerN   string  `json:"ManufacturerName"`
	Popularity      int     `json:"Popularity"`
	Url             string  `json:"Url"`
	ThumbnailUrl    string  `json:"ThumbnailUrl"`
	MediumThumbnail string  `json:"MediumThumbnailUrl"`
}

type ceneoSearchResponse struct {
	D struct {
		Results []ceneoProduct `json:"results"`
	} `json:"d"`
}

// Search queries GetProducts ordered by popularity (ascending = more
// popular). The API exposes only an upper price bound; opts.MinPrice is
// ignored here and must be applied by the caller.
func (c *CeneoClient) Search(ctx context.Context, query string, opts SearchOptions) ([]Product, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: CENEO_API_KEY is not set", ErrNotConfigured)
	}
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	// OData requires string literals in single quotes.
	params := []string{
		fmt.Sprintf("searchtext='%s'", queryEscape(query)),
	}
	if opts.MaxPrice > 0 {
		params = append(params, fmt.Sprintf("highestPrice=%sm", strconv.FormatFloat(opts.MaxPrice, 'f', -1, 64)))
	}
	if opts.Limit > 0 {
		params = append(params, fmt.Sprintf("pageSize=%d", opts.Limit))
	}
	params = append(params, "$orderby=Popularity%20asc", "$format=json")

	reqURL := c.baseURL + "/PartnerService.svc/GetProducts?" + strings.Join(params, "&")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ceneo search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ceneo search failed (%d): %s", resp.StatusCode, string(body))
	}

	var data ceneoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("ceneo search: decode: %w", err)
	}

	products := make([]Product, 0, len(data.D.Results))
	for _, p := range data.D.Results {
		products = append(products, c.convert(p))
	}
	log.Printf("[ceneo] %d products for %q", len(products), query)
	return products, nil
}

func (c *CeneoClient) convert(p ceneoProduct) Product {
	return Product{
		ID:           strconv.FormatInt(p.Id, 10),
		Name:         p.Name,
		Price:        moneyPLN(p.LowestPrice),
		ThumbnailURL: p.ThumbnailUrl,
		URL:          c.AffiliateURL(p.Url),
		Manufacturer: p.ManufacturerN,
		Popularity:   p.Popularity,
		Rating:       p.Rating,
		Reviews:      p.ProductReviews,
	}
}

// AffiliateURL appends the partner identifier fragment, replacing any
// existing one.
func (c *CeneoClient) AffiliateURL(productURL string) string {
	clean := strings.SplitN(productURL, "#", 2)[0]
	if c.partnerID == "" {
		return clean
	}
	return clean + "#pid=" + c.partnerID
}

// accessToken returns a cached token, refreshing when it is near expiry.
func (c *CeneoClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.token != "" && c.tokenExpires.After(now.Add(tokenExpiryBuffer)) {
		return c.token, nil
	}

	authURL := c.baseURL + "/AuthorizationService.svc/GetToken?grantType='client_credentials'"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, string(body))
	}

	token := resp.Header.Get("access_token")
	expiresIn, _ := strconv.Atoi(resp.Header.Get("expires_in"))
	if token == "" || expiresIn <= 0 {
		return "", fmt.Errorf("%w: token missing from response headers", ErrAuth)
	}

	c.token = token
	c.tokenExpires = now.Add(time.Duration(expiresIn) * time.Second)
	log.Printf("[ceneo] new OAuth token, valid %ds", expiresIn)
	return token, nil
}

// queryEscape escapes a phrase for the OData query string using %20 for
// spaces (the API rejects '+').
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

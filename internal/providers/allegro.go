// README: Allegro REST API client (client-credentials OAuth, offer listing search).
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"giftgenie/internal/types"
)

const (
	allegroAccept = "application/vnd.allegro.public.v1+json"
	// allegroMaxLimit is the listing page-size ceiling per the API docs.
	allegroMaxLimit = 60
)

// AllegroClient talks to the Allegro marketplace API.
type AllegroClient struct {
	apiURL     string
	configured bool
	http       *http.Client
}

// NewAllegroClient builds a client using the OAuth2 client-credentials
// flow; the token source caches and refreshes tokens transparently.
// Missing credentials yield a client whose calls fail with ErrNotConfigured.
func NewAllegroClient(clientID, clientSecret, apiURL, authURL string) *AllegroClient {
	c := &AllegroClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		configured: clientID != "" && clientSecret != "",
	}
	if c.configured {
		conf := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     authURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		c.http = conf.Client(context.Background())
		c.http.Timeout = 15 * time.Second
	}
	return c
}

func (c *AllegroClient) Name() string { return "allegro" }

type allegroOffer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SellingMode struct {
		Format string `json:"format"`
		Price  struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"sellingMode"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Seller struct {
		ID string `json:"id"`
	} `json:"seller"`
}

type allegroListingResponse struct {
	Items struct {
		Promoted []allegroOffer `json:"promoted"`
		Regular  []allegroOffer `json:"regular"`
	} `json:"items"`
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`
}

// Search queries /offers/listing sorted by popularity and concatenates
// the promoted and regular buckets in that order.
func (c *AllegroClient) Search(ctx context.Context, query string, opts SearchOptions) ([]Product, error) {
	if !c.configured {
		return nil, fmt.Errorf("%w: ALLEGRO_CLIENT_ID / ALLEGRO_CLIENT_SECRET are not set", ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("phrase", query)
	if opts.MinPrice > 0 {
		q.Set("sellingMode.price.gte", strconv.FormatFloat(opts.MinPrice, 'f', -1, 64))
	}
	if opts.MaxPrice > 0 {
		q.Set("sellingMode.price.lte", strconv.FormatFloat(opts.MaxPrice, 'f', -1, 64))
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > allegroMaxLimit {
		limit = allegroMaxLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "-popularity")

	var data allegroListingResponse
	if err := c.getJSON(ctx, c.apiURL+"/offers/listing?"+q.Encode(), &data); err != nil {
		return nil, err
	}

	offers := append(data.Items.Promoted, data.Items.Regular...)
	products := make([]Product, 0, len(offers))
	for _, o := range offers {
		products = append(products, convertAllegroOffer(o))
	}
	log.Printf("[allegro] %d offers for %q", len(products), query)
	return products, nil
}

// OfferDetails fetches a single offer by listing identifier.
func (c *AllegroClient) OfferDetails(ctx context.Context, offerID string) (*Product, error) {
	if !c.configured {
		return nil, fmt.Errorf("%w: ALLEGRO_CLIENT_ID / ALLEGRO_CLIENT_SECRET are not set", ErrNotConfigured)
	}
	var offer allegroOffer
	if err := c.getJSON(ctx, c.apiURL+"/sale/offers/"+url.PathEscape(offerID), &offer); err != nil {
		return nil, err
	}
	p := convertAllegroOffer(offer)
	return &p, nil
}

func (c *AllegroClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", allegroAccept)

	resp, err := c.http.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: %v", ErrAuth, retrieveErr)
		}
		return fmt.Errorf("allegro request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("allegro request failed (%d): %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func convertAllegroOffer(o allegroOffer) Product {
	amount, _ := strconv.ParseFloat(o.SellingMode.Price.Amount, 64)
	currency := o.SellingMode.Price.Currency
	if currency == "" {
		currency = types.DefaultCurrency
	}
	thumbnail := ""
	if len(o.Images) > 0 {
		thumbnail = o.Images[0].URL
	}
	return Product{
		ID:           o.ID,
		Name:         o.Name,
		Price:        types.Money{Amount: amount, Currency: currency},
		ThumbnailURL: thumbnail,
		URL:          "https://allegro.pl/oferta/" + o.ID,
	}
}

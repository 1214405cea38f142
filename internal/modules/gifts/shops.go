// README: Search-link catalog for partner shops without a product API.
package gifts

import (
	"net/url"
	"strings"
)

// shopConfig describes one API-less shop: a search URL template with a
// {{query}} placeholder and the product categories it covers.
type shopConfig struct {
	Name       string
	URLPattern string
	Categories []string
}

// ShopCatalog maps product categories to shops reachable only through
// their public search pages. Links built from it are never concrete
// offers.
type ShopCatalog struct {
	shops []shopConfig
}

// NewShopCatalog returns the built-in partner shop set.
func NewShopCatalog() *ShopCatalog {
	return &ShopCatalog{shops: []shopConfig{
		{
			Name:       "Empik",
			URLPattern: "https://empik.com/szukaj/produkt?q={{query}}",
			Categories: []string{"książka", "gra planszowa", "film", "muzyka", "puzzle", "artykuły papiernicze"},
		},
		{
			Name:       "Smyk",
			URLPattern: "https://smyk.com/search?q={{query}}",
			Categories: []string{"zabawka", "lego", "lalka", "pluszak", "klocki"},
		},
		{
			Name:       "Douglas",
			URLPattern: "https://douglas.pl/pl/search?query={{query}}",
			Categories: []string{"perfumy", "kosmetyki", "makijaż", "zapach", "krem"},
		},
		{
			Name:       "Reserved",
			URLPattern: "https://reserved.com/pl/pl/search?q={{query}}",
			Categories: []string{"koszulka", "bluza", "sukienka", "kurtka", "odzież", "szalik"},
		},
		{
			Name:       "Morele.net",
			URLPattern: "https://morele.net/wyszukiwarka/?q={{query}}",
			Categories: []string{"elektronika", "laptop", "telefon", "tablet", "słuchawki", "powerbank"},
		},
		{
			Name:       "Media Expert",
			URLPattern: "https://mediaexpert.pl/search?query[querystring]={{query}}",
			Categories: []string{"agd", "rtv", "telewizor", "ekspres", "pralka"},
		},
		{
			Name:       "Pepco",
			URLPattern: "https://pepco.pl/szukaj?q={{query}}",
			Categories: []string{"dekoracje", "dom", "ogród", "tekstylia"},
		},
	}}
}

// SearchLink builds a search-results URL for the given shop name, or ""
// when the shop is unknown.
func (c *ShopCatalog) SearchLink(shopName, query string) string {
	for _, s := range c.shops {
		if strings.EqualFold(s.Name, shopName) {
			return strings.Replace(s.URLPattern, "{{query}}", url.QueryEscape(strings.TrimSpace(query)), 1)
		}
	}
	return ""
}

// LinkForCategory finds the first shop whose categories match the
// product phrase and returns a non-concrete search link for it.
func (c *ShopCatalog) LinkForCategory(phrase string) *ShopLink {
	lower := strings.ToLower(phrase)
	for _, s := range c.shops {
		for _, cat := range s.Categories {
			if strings.Contains(lower, cat) {
				return &ShopLink{
					Shop:            s.Name,
					URL:             c.SearchLink(s.Name, phrase),
					IsConcreteOffer: false,
				}
			}
		}
	}
	return nil
}

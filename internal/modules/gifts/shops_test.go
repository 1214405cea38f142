// README: Shop catalog tests (category matching, search URLs).
package gifts

import (
	"strings"
	"testing"
)

func TestSearchLink(t *testing.T) {
	c := NewShopCatalog()

	got := c.SearchLink("Empik", "gra planszowa catan")
	if !strings.HasPrefix(got, "https://empik.com/szukaj/produkt?q=") {
		t.Errorf("unexpected URL: %q", got)
	}
	if strings.Contains(got, " ") {
		t.Errorf("query not escaped: %q", got)
	}

	// Shop name matching is case-insensitive.
	if c.SearchLink("empik", "x") == "" {
		t.Error("expected case-insensitive shop match")
	}
	if c.SearchLink("Nieznany Sklep", "x") != "" {
		t.Error("expected empty URL for unknown shop")
	}
}

func TestLinkForCategory(t *testing.T) {
	c := NewShopCatalog()

	cases := []struct {
		phrase   string
		wantShop string
	}{
		{"książka kucharska dla mamy", "Empik"},
		{"Klocki LEGO Technic", "Smyk"},
		{"perfumy damskie 50ml", "Douglas"},
		{"słuchawki bezprzewodowe", "Morele.net"},
		{"ekspres do kawy", "Media Expert"},
	}
	for _, tc := range cases {
		link := c.LinkForCategory(tc.phrase)
		if link == nil {
			t.Errorf("LinkForCategory(%q) = nil, want %s", tc.phrase, tc.wantShop)
			continue
		}
		if link.Shop != tc.wantShop {
			t.Errorf("LinkForCategory(%q).Shop = %q, want %q", tc.phrase, link.Shop, tc.wantShop)
		}
		if link.IsConcreteOffer {
			t.Errorf("catalog link for %q must not claim a concrete offer", tc.phrase)
		}
		// Category links are built the same way as direct shop links.
		if want := c.SearchLink(link.Shop, tc.phrase); link.URL != want {
			t.Errorf("LinkForCategory(%q).URL = %q, want %q", tc.phrase, link.URL, want)
		}
	}

	if link := c.LinkForCategory("całkowicie niedopasowana fraza"); link != nil {
		t.Errorf("expected nil for unmatched phrase, got %+v", link)
	}
}

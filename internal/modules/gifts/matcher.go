// README: Per-idea product matching and audience/budget filtering.
package gifts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"giftgenie/internal/ai"
	"giftgenie/internal/cache"
	"giftgenie/internal/providers"
)

// candidateFetchSize is how many candidates to request per idea. The
// price-comparison API has no server-side lower-price filter, so we
// over-fetch and discard under-budget results here.
const candidateFetchSize = 10

// genericWhy is the fallback justification when the model gave none.
const genericWhy = "Świetny wybór dopasowany do Twoich kryteriów."

// childKeywords are substrings indicating a children's product. The
// adult guard rejects ideas and products containing any of them. This
// and the budget floor are the ONLY mechanically enforced filters;
// occasion-appropriateness lives in the prompt and is advisory.
var childKeywords = []string{
	"dla dzieci",
	"dla dziecka",
	"dziecięc",
	"dzieciec",
	"zabawka",
	"zabawki",
	"pluszak",
	"toy",
	"3+", "4+", "5+", "6+", "7+", "8+",
}

// containsChildKeyword is case-insensitive.
func containsChildKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range childKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matcher resolves one abstract idea to at most one proposal.
type matcher struct {
	provider providers.Provider
	cache    *cache.ProductCache
	shops    *ShopCatalog
}

// matchIdea implements the per-idea algorithm: adult keyword pre-filter
// on the phrase, cached provider lookup with budget bounds, a stricter
// keyword pass on the actual product name, then proposal assembly.
// A (nil, nil) return means the idea is silently dropped.
func (m *matcher) matchIdea(ctx context.Context, idea ai.GiftIdea, params searchParams) (*Proposal, error) {
	// Runs before any network call to save provider quota.
	if params.Adult && containsChildKeyword(idea.SearchQuery) {
		log.Printf("[gifts] idea %q rejected by adult guard (phrase)", idea.SearchQuery)
		return nil, nil
	}

	product, err := m.cache.GetOrFetch(ctx, idea.SearchQuery, params.BudgetMin, params.BudgetMax,
		func(ctx context.Context) (*providers.Product, error) {
			return m.fetchBest(ctx, idea.SearchQuery, params.BudgetMin, params.BudgetMax)
		})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", idea.SearchQuery, err)
	}
	if product == nil {
		log.Printf("[gifts] no products for %q", idea.SearchQuery)
		return nil, nil
	}

	// Second, stricter pass against the real product name.
	if params.Adult && containsChildKeyword(product.Name) {
		log.Printf("[gifts] product %q rejected by adult guard (name)", product.Name)
		return nil, nil
	}

	return m.buildProposal(idea, *product), nil
}

// fetchBest searches the provider, applies the client-side budget floor
// and picks the best-ranked surviving candidate. Not-found is (nil, nil)
// so the cache memoizes it.
func (m *matcher) fetchBest(ctx context.Context, query string, budgetMin, budgetMax float64) (*providers.Product, error) {
	candidates, err := m.provider.Search(ctx, query, providers.SearchOptions{
		MinPrice: budgetMin,
		MaxPrice: budgetMax,
		Limit:    candidateFetchSize,
	})
	if err != nil {
		return nil, err
	}

	var best *providers.Product
	for i := range candidates {
		c := &candidates[i]
		if budgetMin > 0 && c.Price.Amount < budgetMin {
			continue
		}
		if best == nil || providers.BetterRanked(*c, *best) {
			best = c
		}
	}
	return best, nil
}

// buildProposal merges the matched product with the idea's rationale.
func (m *matcher) buildProposal(idea ai.GiftIdea, p providers.Product) *Proposal {
	description := idea.Description
	if description == "" {
		description = p.Manufacturer
	}
	if description == "" {
		description = p.Name
	}
	why := idea.Why
	if why == "" {
		why = genericWhy
	}

	links := []ShopLink{{
		Shop:            shopDisplayName(m.provider.Name()),
		URL:             p.URL,
		IsConcreteOffer: true,
	}}
	// Append a generic search link for a category-matching shop without
	// an API, when one exists.
	if extra := m.shops.LinkForCategory(idea.SearchQuery); extra != nil {
		links = append(links, *extra)
	}

	return &Proposal{
		Title:         p.Name,
		Description:   description,
		Why:           why,
		PriceEstimate: p.Price.Format(),
		ImageURL:      p.ThumbnailURL,
		Source:        m.provider.Name(),
		ProductID:     p.ID,
		ShopLinks:     links,
		price:         p.Price.Amount,
	}
}

func shopDisplayName(providerName string) string {
	switch providerName {
	case "ceneo":
		return "Ceneo"
	case "allegro":
		return "Allegro"
	default:
		return providerName
	}
}

// README: Gift service orchestrates idea generation, matching and assembly.
package gifts

import (
	"context"
	"errors"
	"fmt"
	"log"

	"giftgenie/internal/ai"
	"giftgenie/internal/cache"
	"giftgenie/internal/config"
	"giftgenie/internal/providers"
)

// ErrNotConfigured mirrors the provider sentinel so handlers can map
// missing-credential failures without importing providers.
var ErrNotConfigured = providers.ErrNotConfigured

// Service drives the request pipeline: normalize intent, generate ideas,
// match each idea to a product, assemble the bounded result set.
type Service struct {
	gen      ai.Generator
	provider providers.Provider
	matcher  *matcher
	// strategy is config.ProviderCeneo (search per idea) or
	// config.ProviderAllegro (pre-fetch listings, model selects).
	strategy string
}

func NewService(gen ai.Generator, provider providers.Provider, productCache *cache.ProductCache, strategy string) *Service {
	return &Service{
		gen:      gen,
		provider: provider,
		matcher: &matcher{
			provider: provider,
			cache:    productCache,
			shops:    NewShopCatalog(),
		},
		strategy: strategy,
	}
}

// Generate runs the full pipeline for one request. Idea-level failures
// are absorbed and logged; request-level failures (unparseable model
// output, provider auth, zero results after fallback) surface as errors.
// The second return value is how many ideas the model produced before
// matching, for the usage log.
func (s *Service) Generate(ctx context.Context, intent Intent) ([]Proposal, int, error) {
	params, err := normalizeIntent(intent)
	if err != nil {
		return nil, 0, err
	}
	if s.gen == nil {
		return nil, 0, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNotConfigured)
	}

	log.Printf("[gifts] generate: kind=%s phrase=%q budget=%.0f-%.0f adult=%v",
		intent.Kind, params.Phrase, params.BudgetMin, params.BudgetMax, params.Adult)

	var matched []Proposal
	var ideaCount int
	if s.strategy == config.ProviderAllegro {
		matched, ideaCount, err = s.generateFromListings(ctx, params)
	} else {
		matched, ideaCount, err = s.generateFromIdeas(ctx, params)
	}
	if err != nil {
		return nil, 0, err
	}

	proposals := assemble(matched)
	if len(proposals) == 0 {
		proposals, err = s.fallback(ctx, params)
		if err != nil {
			return nil, 0, err
		}
	}
	if len(proposals) == 0 {
		return nil, 0, ErrNoResults
	}

	log.Printf("[gifts] returning %d proposals", len(proposals))
	return proposals, ideaCount, nil
}

// LookupProduct returns the single best-matched product for a free-text
// phrase, through the shared cache. A nil product with nil error means
// nothing matched.
func (s *Service) LookupProduct(ctx context.Context, query string, minPrice, maxPrice float64) (*providers.Product, error) {
	if query == "" {
		return nil, ErrBadRequest
	}
	return s.matcher.cache.GetOrFetch(ctx, query, minPrice, maxPrice,
		func(ctx context.Context) (*providers.Product, error) {
			return s.matcher.fetchBest(ctx, query, minPrice, maxPrice)
		})
}

// generateFromIdeas is the search-per-idea strategy: every model idea is
// looked up independently (through the cache).
func (s *Service) generateFromIdeas(ctx context.Context, params searchParams) ([]Proposal, int, error) {
	ideas, err := s.gen.GenerateIdeas(ctx, params.Prompt)
	if err != nil {
		return nil, 0, err
	}
	log.Printf("[gifts] model produced %d ideas", len(ideas))

	var matched []Proposal
	for _, idea := range ideas {
		p, err := s.matcher.matchIdea(ctx, idea, params)
		if err != nil {
			// Auth and configuration failures will fail every
			// remaining idea too; everything else is isolated to
			// this one idea.
			if errors.Is(err, providers.ErrAuth) || errors.Is(err, providers.ErrNotConfigured) {
				return nil, 0, err
			}
			log.Printf("[gifts] idea %q failed: %v", idea.SearchQuery, err)
			continue
		}
		if p != nil {
			matched = append(matched, *p)
		}
	}
	return matched, len(ideas), nil
}

// generateFromListings is the marketplace strategy: pre-fetch real
// listings for the normalized phrase, let the model pick, and resolve
// its choices against the pre-fetched set (no per-idea search).
func (s *Service) generateFromListings(ctx context.Context, params searchParams) ([]Proposal, int, error) {
	listings, err := s.provider.Search(ctx, params.Phrase, providers.SearchOptions{
		MinPrice: params.BudgetMin,
		MaxPrice: params.BudgetMax,
		Limit:    40,
	})
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[string]providers.Product, len(listings))
	var offered []ai.SelectionListing
	for _, l := range listings {
		if params.BudgetMin > 0 && l.Price.Amount < params.BudgetMin {
			continue
		}
		if params.Adult && containsChildKeyword(l.Name) {
			continue
		}
		byID[l.ID] = l
		offered = append(offered, ai.SelectionListing{
			ID:    l.ID,
			Name:  l.Name,
			Price: l.Price.Format(),
		})
	}
	if len(offered) == 0 {
		return nil, 0, nil
	}

	choices, err := s.gen.SelectListings(ctx, ai.SelectionInput{
		PromptInput: params.Prompt,
		Listings:    offered,
	})
	if err != nil {
		return nil, 0, err
	}
	log.Printf("[gifts] model selected %d of %d listings", len(choices), len(offered))

	var matched []Proposal
	for _, choice := range choices {
		product, ok := byID[choice.ListingID]
		if !ok {
			log.Printf("[gifts] model referenced unknown listing %q, skipping", choice.ListingID)
			continue
		}
		matched = append(matched, *s.matcher.buildProposal(ai.GiftIdea{
			SearchQuery: product.Name,
			Description: choice.Description,
			Why:         choice.Why,
		}, product))
	}
	return matched, len(choices), nil
}

// fallback wraps the first raw provider results for the normalized
// phrase as generic proposals, so the caller never sees an empty result
// while any product data exists.
func (s *Service) fallback(ctx context.Context, params searchParams) ([]Proposal, error) {
	log.Printf("[gifts] matching yielded nothing, falling back to raw search for %q", params.Phrase)
	raw, err := s.provider.Search(ctx, params.Phrase, providers.SearchOptions{
		MinPrice: params.BudgetMin,
		MaxPrice: params.BudgetMax,
		Limit:    candidateFetchSize,
	})
	if err != nil {
		if errors.Is(err, providers.ErrAuth) || errors.Is(err, providers.ErrNotConfigured) {
			return nil, err
		}
		log.Printf("[gifts] fallback search failed: %v", err)
		return nil, nil
	}

	var out []Proposal
	for _, p := range raw {
		if params.BudgetMin > 0 && p.Price.Amount < params.BudgetMin {
			continue
		}
		if params.Adult && containsChildKeyword(p.Name) {
			continue
		}
		out = append(out, *s.matcher.buildProposal(ai.GiftIdea{
			SearchQuery: params.Phrase,
			Why:         fallbackWhy,
		}, p))
		if len(out) == fallbackCount {
			break
		}
	}
	return out, nil
}

// README: Product provider abstraction over Ceneo and Allegro search APIs.
package providers

import (
	"context"
	"errors"

	"giftgenie/internal/types"
)

var (
	// ErrNotConfigured means the provider credentials are missing from the
	// environment. Surfaced before any network call.
	ErrNotConfigured = errors.New("provider is not configured")
	// ErrAuth means the OAuth token exchange with the provider failed.
	ErrAuth = errors.New("provider authorization failed")
)

// Product is one record returned by a provider search. The ID is unique
// only within the provider's own namespace.
type Product struct {
	ID           string
	Name         string
	Price        types.Money
	ThumbnailURL string
	// URL points at the product's detail/listing page, with the partner
	// identifier already appended where the provider supports one.
	URL          string
	Manufacturer string

	// Quality signals; zero values mean the provider exposes no such signal.
	// Popularity is rank-like: lower is more popular (1 = top tier).
	Popularity int
	Rating     float64
	Reviews    int
}

// SearchOptions bound a provider search. MinPrice is best-effort: the
// price-comparison API has no server-side floor, so callers must still
// filter low-priced results themselves.
type SearchOptions struct {
	MinPrice float64
	MaxPrice float64
	Limit    int
}

// Provider is a keyword+price-bounded product search service.
// Implementations return results pre-ordered by relevance/popularity.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, opts SearchOptions) ([]Product, error)
}

func moneyPLN(amount float64) types.Money {
	return types.Money{Amount: amount, Currency: types.DefaultCurrency}
}

// BetterRanked reports whether a should be picked over b: best (lowest)
// popularity rank first, ties broken by highest rating, then by most
// reviews. A zero popularity means the provider exposes no rank and
// sorts last.
func BetterRanked(a, b Product) bool {
	ar, br := rankOrUnranked(a.Popularity), rankOrUnranked(b.Popularity)
	if ar != br {
		return ar < br
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.Reviews > b.Reviews
}

func rankOrUnranked(p int) int {
	if p <= 0 {
		return int(^uint(0) >> 1)
	}
	return p
}

package ai

import (
	"context"
)

// Generator defines the contract for the LLM-backed idea stage.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Generator interface {
	// GenerateIdeas produces abstract gift ideas (search phrase + rationale)
	// for the given audience and budget. The occasion and age policy is
	// carried entirely inside the prompt; callers must not assume the
	// returned phrases respect it.
	GenerateIdeas(ctx context.Context, input PromptInput) ([]GiftIdea, error)

	// SelectListings asks the model to pick the best-fitting entries from a
	// pre-fetched set of marketplace listings (the "choose from these"
	// prompt variant). Returned choices reference listing IDs from input.
	SelectListings(ctx context.Context, input SelectionInput) ([]ListingChoice, error)
}

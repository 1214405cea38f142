package ai

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Field aliases seen across model outputs. The model is told to use
// "searchQuery", but in practice it sometimes answers with a sibling
// spelling; one normalization table beats optional-field checks spread
// through the pipeline.
var (
	ideaListKeys  = []string{"prezenty", "gifts", "ideas", "wybrane", "selected"}
	queryKeys     = []string{"searchQuery", "search_query", "query", "title", "productName", "product_name"}
	descKeys      = []string{"description", "opis"}
	whyKeys       = []string{"why", "uzasadnienie", "reason"}
	listingIDKeys = []string{"offerId", "offer_id", "listingId", "listing_id", "id"}
)

// DecodeIdeas parses a model completion into gift ideas. The completion
// must be a JSON object carrying a list of idea entries under one of the
// known keys; entries lacking a search phrase are dropped with a warning.
// A completion that is not such an object is an ErrInvalidResponse.
func DecodeIdeas(raw string) ([]GiftIdea, error) {
	entries, err := decodeEntryList(raw)
	if err != nil {
		return nil, err
	}
	var ideas []GiftIdea
	for _, e := range entries {
		q := strings.TrimSpace(firstString(e, queryKeys))
		if q == "" {
			log.Printf("[ai] dropping idea without search phrase: %v", e)
			continue
		}
		ideas = append(ideas, GiftIdea{
			SearchQuery: q,
			Description: strings.TrimSpace(firstString(e, descKeys)),
			Why:         strings.TrimSpace(firstString(e, whyKeys)),
		})
	}
	return ideas, nil
}

// DecodeListingChoices parses the selection prompt completion.
func DecodeListingChoices(raw string) ([]ListingChoice, error) {
	entries, err := decodeEntryList(raw)
	if err != nil {
		return nil, err
	}
	var choices []ListingChoice
	for _, e := range entries {
		id := strings.TrimSpace(firstString(e, listingIDKeys))
		if id == "" {
			log.Printf("[ai] dropping choice without listing id: %v", e)
			continue
		}
		choices = append(choices, ListingChoice{
			ListingID:   id,
			Description: strings.TrimSpace(firstString(e, descKeys)),
			Why:         strings.TrimSpace(firstString(e, whyKeys)),
		})
	}
	return choices, nil
}

func decodeEntryList(raw string) ([]map[string]any, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	var list []map[string]any
	found := false
	for _, key := range ideaListKeys {
		rawList, ok := payload[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(rawList, &list); err != nil {
			return nil, fmt.Errorf("%w: %q is not a list of objects", ErrInvalidResponse, key)
		}
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: no idea list in response", ErrInvalidResponse)
	}
	return list, nil
}

// firstString returns the first present, non-empty string value among keys.
func firstString(entry map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := entry[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

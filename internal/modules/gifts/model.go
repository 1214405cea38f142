// README: Gift request intents, proposals and normalization rules.
package gifts

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"giftgenie/internal/ai"
)

var (
	ErrBadRequest = errors.New("bad request")
	// ErrNoResults means the pipeline completed but produced zero
	// proposals even after the raw-search fallback. A user-facing
	// "broaden your criteria" condition, not a server fault.
	ErrNoResults = errors.New("no products matched the criteria")
)

// Budget defaults per intake mode.
const (
	defaultBudgetMin = 0
	defaultBudgetMax = 10000

	randomBudgetMin = 50
	randomBudgetMax = 500
)

// maxProposals caps the final result list.
const maxProposals = 10

// FormIntent is the structured-form intake shape.
type FormIntent struct {
	Occasion     string  `json:"occasion"`
	Gender       string  `json:"gender"`
	Relationship string  `json:"relationship"`
	Age          string  `json:"age"`
	Interests    string  `json:"interests"`
	Style        string  `json:"style"`
	GiftForm     string  `json:"giftForm"`
	BudgetMin    float64 `json:"budgetMin"`
	BudgetMax    float64 `json:"budgetMax"`
}

// DescriptionIntent is the free-text intake shape.
type DescriptionIntent struct {
	Text      string  `json:"text"`
	BudgetMin float64 `json:"budgetMin"`
	BudgetMax float64 `json:"budgetMax"`
}

// Intent is the normalized user input; exactly one shape is active,
// selected by Kind.
type Intent struct {
	Kind        ai.IntakeKind
	Form        FormIntent
	Description DescriptionIntent
}

// ShopLink points a proposal at a shop. IsConcreteOffer distinguishes a
// link to the exact matched item from a generic search-results link.
type ShopLink struct {
	Shop            string `json:"shop"`
	URL             string `json:"url"`
	IsConcreteOffer bool   `json:"isConcreteOffer"`
}

// Proposal is one final, product-backed gift suggestion.
type Proposal struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Why           string     `json:"why"`
	PriceEstimate string     `json:"price_estimate"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Source        string     `json:"source"`
	ProductID     string     `json:"productId,omitempty"`
	ShopLinks     []ShopLink `json:"shop_links"`

	// price keeps the numeric amount for filtering; not serialized.
	price float64
}

// searchParams is the intent reduced to what the pipeline needs.
type searchParams struct {
	Phrase    string
	BudgetMin float64
	BudgetMax float64
	// Adult is true when the recipient is known to be 18 or older,
	// which arms the children's-category keyword guard.
	Adult  bool
	Prompt ai.PromptInput
}

// budgetPattern extracts an embedded "N-M zł" range from free text.
var budgetPattern = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*(?:zł|PLN)`)

// normalizeIntent validates the intent and derives search parameters.
func normalizeIntent(intent Intent) (searchParams, error) {
	switch intent.Kind {
	case ai.IntakeForm:
		return normalizeForm(intent.Form)
	case ai.IntakeDescription:
		return normalizeDescription(intent.Description)
	case ai.IntakeRandom:
		return searchParams{
			Phrase:    "prezent",
			BudgetMin: randomBudgetMin,
			BudgetMax: randomBudgetMax,
			Prompt: ai.PromptInput{
				Kind:      ai.IntakeRandom,
				BudgetMin: randomBudgetMin,
				BudgetMax: randomBudgetMax,
			},
		}, nil
	default:
		return searchParams{}, ErrBadRequest
	}
}

func normalizeForm(f FormIntent) (searchParams, error) {
	if strings.TrimSpace(f.Occasion) == "" {
		return searchParams{}, ErrBadRequest
	}
	min, max := clampBudget(f.BudgetMin, f.BudgetMax)

	phrase := strings.TrimSpace(strings.Join([]string{"prezent", f.Occasion, f.Gender, f.Interests}, " "))
	phrase = strings.Join(strings.Fields(phrase), " ")

	return searchParams{
		Phrase:    phrase,
		BudgetMin: min,
		BudgetMax: max,
		Adult:     ai.IsAdultAge(f.Age),
		Prompt: ai.PromptInput{
			Kind:         ai.IntakeForm,
			Occasion:     f.Occasion,
			Gender:       f.Gender,
			Relationship: f.Relationship,
			Age:          f.Age,
			Interests:    f.Interests,
			Style:        f.Style,
			GiftForm:     f.GiftForm,
			BudgetMin:    min,
			BudgetMax:    max,
		},
	}, nil
}

func normalizeDescription(d DescriptionIntent) (searchParams, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return searchParams{}, ErrBadRequest
	}

	min, max := d.BudgetMin, d.BudgetMax
	if min == 0 && max == 0 {
		if m := budgetPattern.FindStringSubmatch(text); m != nil {
			min = parsePrice(m[1])
			max = parsePrice(m[2])
		}
	}
	min, max = clampBudget(min, max)

	return searchParams{
		Phrase:    text,
		BudgetMin: min,
		BudgetMax: max,
		Prompt: ai.PromptInput{
			Kind:      ai.IntakeDescription,
			FreeText:  text,
			BudgetMin: min,
			BudgetMax: max,
		},
	}, nil
}

// clampBudget applies the defaults and discards an inverted range.
func clampBudget(min, max float64) (float64, float64) {
	if min < 0 {
		min = defaultBudgetMin
	}
	if max <= 0 {
		max = defaultBudgetMax
	}
	if min > max {
		return defaultBudgetMin, defaultBudgetMax
	}
	return min, max
}

func parsePrice(s string) float64 {
	n, _ := strconv.Atoi(s)
	return float64(n)
}

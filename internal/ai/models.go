package ai

import "errors"

// ErrInvalidResponse is returned when the model output cannot be parsed
// as the expected JSON shape. This is fatal for the whole request.
var ErrInvalidResponse = errors.New("ai returned an invalid response format")

// IntakeKind distinguishes the three ways a request can describe the recipient.
type IntakeKind string

const (
	IntakeForm        IntakeKind = "form"
	IntakeDescription IntakeKind = "description"
	IntakeRandom      IntakeKind = "random"
)

// PromptInput carries audience and budget constraints into the prompt.
// Which fields matter depends on Kind: form fills the structured fields,
// description fills FreeText, random uses only the budget band.
type PromptInput struct {
	Kind         IntakeKind
	Occasion     string
	Gender       string
	Relationship string
	Age          string
	Interests    string
	Style        string
	GiftForm     string
	FreeText     string
	BudgetMin    float64
	BudgetMax    float64
}

// GiftIdea is an abstract, not-yet-matched gift concept.
type GiftIdea struct {
	// SearchQuery is the concrete phrase to search a product provider with.
	SearchQuery string
	// Description explains why the idea fits the recipient. May be empty.
	Description string
	// Why is a short justification sentence. May be empty.
	Why string
}

// SelectionListing is one pre-fetched marketplace listing offered to the
// model in the selection prompt variant.
type SelectionListing struct {
	ID    string
	Name  string
	Price string
}

// SelectionInput carries the pre-fetched candidate set plus the same
// audience context as PromptInput.
type SelectionInput struct {
	PromptInput
	Listings []SelectionListing
}

// ListingChoice is the model's pick from a SelectionInput candidate set.
type ListingChoice struct {
	ListingID   string
	Description string
	Why         string
}

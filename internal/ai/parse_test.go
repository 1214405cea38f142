package ai

import (
	"errors"
	"testing"
)

func TestDecodeIdeas(t *testing.T) {
	raw := `{
		"prezenty": [
			{"searchQuery": "kubek termiczny", "description": "Na kawę", "why": "Lubi kawę"},
			{"search_query": "mata do jogi", "opis": "Do ćwiczeń", "uzasadnienie": "Ćwiczy"},
			{"query": "  powieść kryminalna  "},
			{"description": "wpis bez frazy"}
		]
	}`
	ideas, err := DecodeIdeas(raw)
	if err != nil {
		t.Fatalf("DecodeIdeas: %v", err)
	}
	if len(ideas) != 3 {
		t.Fatalf("expected 3 ideas (entry without phrase dropped), got %d", len(ideas))
	}
	if ideas[0].SearchQuery != "kubek termiczny" || ideas[0].Why != "Lubi kawę" {
		t.Errorf("unexpected first idea: %+v", ideas[0])
	}
	// Polish alias keys map onto the same fields.
	if ideas[1].Description != "Do ćwiczeń" || ideas[1].Why != "Ćwiczy" {
		t.Errorf("alias keys not decoded: %+v", ideas[1])
	}
	if ideas[2].SearchQuery != "powieść kryminalna" {
		t.Errorf("phrase not trimmed: %q", ideas[2].SearchQuery)
	}
}

func TestDecodeIdeasAlternateListKeys(t *testing.T) {
	for _, raw := range []string{
		`{"gifts": [{"searchQuery": "x"}]}`,
		`{"ideas": [{"searchQuery": "x"}]}`,
	} {
		ideas, err := DecodeIdeas(raw)
		if err != nil {
			t.Errorf("DecodeIdeas(%q): %v", raw, err)
			continue
		}
		if len(ideas) != 1 {
			t.Errorf("DecodeIdeas(%q): got %d ideas", raw, len(ideas))
		}
	}
}

func TestDecodeIdeasInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "to nie jest json"},
		{"top-level array", `[{"searchQuery": "x"}]`},
		{"no known list key", `{"wyniki": []}`},
		{"list of strings", `{"prezenty": ["kubek"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeIdeas(tc.raw); !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestDecodeIdeasEmptyList(t *testing.T) {
	ideas, err := DecodeIdeas(`{"prezenty": []}`)
	if err != nil {
		t.Fatalf("DecodeIdeas: %v", err)
	}
	if len(ideas) != 0 {
		t.Errorf("expected no ideas, got %d", len(ideas))
	}
}

func TestDecodeListingChoices(t *testing.T) {
	raw := `{
		"wybrane": [
			{"offerId": "12345", "description": "Pasuje", "why": "Dobra cena"},
			{"id": "67890"},
			{"description": "bez identyfikatora"}
		]
	}`
	choices, err := DecodeListingChoices(raw)
	if err != nil {
		t.Fatalf("DecodeListingChoices: %v", err)
	}
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(choices))
	}
	if choices[0].ListingID != "12345" || choices[1].ListingID != "67890" {
		t.Errorf("unexpected ids: %+v", choices)
	}
}

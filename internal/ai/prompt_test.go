package ai

import (
	"strings"
	"testing"
)

func TestAgeBracket(t *testing.T) {
	cases := []struct {
		age    string
		want   string
		wantOK bool
	}{
		{"5", BracketChild, true},
		{"12", BracketChild, true},
		{"13", BracketTeen, true},
		{"17", BracketTeen, true},
		{"18", BracketYoungAdult, true},
		{"29", BracketYoungAdult, true},
		{"30", BracketAdult, true},
		{"49", BracketAdult, true},
		{"50", BracketSenior, true},
		{"83", BracketSenior, true},
		{" 25 ", BracketYoungAdult, true},
		{"", "", false},
		{"dorosły", "", false},
		{"-3", "", false},
	}
	for _, tc := range cases {
		got, ok := AgeBracket(tc.age)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("AgeBracket(%q) = %q, %v; want %q, %v", tc.age, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestIsAdultAge(t *testing.T) {
	cases := []struct {
		age  string
		want bool
	}{
		{"17", false},
		{"18", true},
		{"45", true},
		{"", false},
		{"abc", false},
	}
	for _, tc := range cases {
		if got := IsAdultAge(tc.age); got != tc.want {
			t.Errorf("IsAdultAge(%q) = %v, want %v", tc.age, got, tc.want)
		}
	}
}

func TestBuildIdeaPromptFormIncludesConstraints(t *testing.T) {
	p := BuildIdeaPrompt(PromptInput{
		Kind:      IntakeForm,
		Occasion:  "chrzciny",
		Gender:    "chłopiec",
		Age:       "1",
		Interests: "brak",
		BudgetMin: 50,
		BudgetMax: 200,
	})
	for _, want := range []string{
		"Okazja: chrzciny",
		"Budżet: 50 - 200 PLN",
		"CHRZCINY",
		"pamiątki religijne",
		`"prezenty"`,
		"searchQuery",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("form prompt missing %q", want)
		}
	}
}

func TestBuildIdeaPromptAdultExclusion(t *testing.T) {
	p := BuildIdeaPrompt(PromptInput{
		Kind:     IntakeForm,
		Occasion: "urodziny",
		Age:      "40",
	})
	if !strings.Contains(p, "OSOBA DOROSŁA") {
		t.Error("adult prompt missing the children's-category exclusion block")
	}

	child := BuildIdeaPrompt(PromptInput{
		Kind:     IntakeForm,
		Occasion: "urodziny",
		Age:      "9",
	})
	if strings.Contains(child, "OSOBA DOROSŁA") {
		t.Error("child prompt must not carry the adult exclusion block")
	}
	if !strings.Contains(child, BracketChild) {
		t.Error("child prompt missing the age bracket guidance")
	}
}

func TestBuildIdeaPromptOccasionAliases(t *testing.T) {
	cases := []struct {
		occasion string
		want     string
	}{
		{"wesele", "dla PARY"},
		{"bierzmowanie", "komunijne"},
		{"boże narodzenie kolacja", "świąteczny"},
		{"mikołajki", "świąteczny"},
	}
	for _, tc := range cases {
		p := BuildIdeaPrompt(PromptInput{Kind: IntakeForm, Occasion: tc.occasion})
		if !strings.Contains(strings.ToLower(p), strings.ToLower(tc.want)) {
			t.Errorf("prompt for %q missing %q", tc.occasion, tc.want)
		}
	}
}

func TestBuildIdeaPromptDescription(t *testing.T) {
	p := BuildIdeaPrompt(PromptInput{
		Kind:      IntakeDescription,
		FreeText:  "prezent dla taty, lubi wędkarstwo",
		BudgetMin: 100,
		BudgetMax: 400,
	})
	if !strings.Contains(p, "lubi wędkarstwo") {
		t.Error("description prompt missing the user text")
	}
	if !strings.Contains(p, "Budżet: 100 - 400 PLN") {
		t.Error("description prompt missing the budget line")
	}
}

func TestBuildIdeaPromptRandom(t *testing.T) {
	p := BuildIdeaPrompt(PromptInput{Kind: IntakeRandom, BudgetMin: 50, BudgetMax: 500})
	if !strings.Contains(p, "losowej osoby") {
		t.Error("random prompt missing the random-person framing")
	}
	if !strings.Contains(p, "Budżet: 50 - 500 PLN") {
		t.Error("random prompt missing the budget line")
	}
}

func TestBuildSelectionPrompt(t *testing.T) {
	p := BuildSelectionPrompt(SelectionInput{
		PromptInput: PromptInput{
			Kind:      IntakeForm,
			Occasion:  "urodziny",
			Age:       "30",
			BudgetMin: 50,
			BudgetMax: 300,
		},
		Listings: []SelectionListing{
			{ID: "111", Name: "Zegarek Casio", Price: "200 PLN"},
			{ID: "222", Name: "Kubek termiczny", Price: "89 PLN"},
		},
	})
	for _, want := range []string{
		"- [111] Zegarek Casio (200 PLN)",
		"- [222] Kubek termiczny (89 PLN)",
		"WYŁĄCZNIE identyfikatorów",
		`"wybrane"`,
		"offerId",
		"OSOBA DOROSŁA",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("selection prompt missing %q", want)
		}
	}
}

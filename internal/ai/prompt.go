package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// Age brackets, used both in prompts and by the matching layer's adult guard.
const (
	BracketChild      = "dziecko"
	BracketTeen       = "nastolatek"
	BracketYoungAdult = "młody dorosły"
	BracketAdult      = "dorosły"
	BracketSenior     = "senior"
)

// AgeBracket maps a numeric age to a coarse audience bracket.
// The bool reports whether the age string was parseable at all.
func AgeBracket(age string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil || n < 0 {
		return "", false
	}
	switch {
	case n < 13:
		return BracketChild, true
	case n < 18:
		return BracketTeen, true
	case n < 30:
		return BracketYoungAdult, true
	case n < 50:
		return BracketAdult, true
	default:
		return BracketSenior, true
	}
}

// IsAdultAge reports whether the age string parses to 18 or more.
func IsAdultAge(age string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	return err == nil && n >= 18
}

// occasionGuidance holds curated, occasion-specific instruction blocks.
// These constraints live only in the prompt: the code deliberately does
// not enforce them (the only mechanical filters are the adult keyword
// guard and the budget floor).
var occasionGuidance = map[string]string{
	"chrzciny": `OKAZJA: CHRZCINY / CHRZEST ŚWIĘTY.
Proponuj WYŁĄCZNIE pamiątki religijne i klasyczne prezenty chrzcielne:
srebrne łyżeczki, medaliki, ryngrafy, biblie dla dzieci, aniołki, ramki na
metrykę, obrazki święte, komplety pościeli z haftem.
ZAKAZ: elektronika, kosmetyki, zabawki interaktywne, ubrania codzienne.`,
	"komunia": `OKAZJA: PIERWSZA KOMUNIA / BIERZMOWANIE.
Proponuj prezenty komunijne: biblie, różańce, pamiątkowe albumy, zegarki
klasyczne, biżuteria ze srebra, pióra wieczne, rowery (tradycyjny prezent
komunijny w Polsce).
ZAKAZ: kosmetyki, alkohol, gry dla dorosłych.`,
	"ślub": `OKAZJA: ŚLUB / WESELE.
Proponuj prezenty dla PARY: sprzęt AGD premium, zestawy stołowe, pościel
wysokiej jakości, vouchery na wspólne przeżycia, ramki i albumy ślubne,
dekoracje do wspólnego domu.
ZAKAZ: prezenty wyraźnie dla jednej osoby (np. perfumy damskie).`,
	"rocznica": `OKAZJA: ROCZNICA.
Proponuj prezenty romantyczne lub pamiątkowe: biżuteria, albumy na zdjęcia,
grawer, wino lub akcesoria winiarskie, wspólne doświadczenia.`,
	"urodziny": `OKAZJA: URODZINY.
Pełna dowolność kategorii, byle dopasowane do wieku i zainteresowań.`,
	"imieniny": `OKAZJA: IMIENINY.
Prezenty drobniejsze niż urodzinowe: kwiaty z dodatkiem, słodycze premium,
książki, drobna galanteria, kubki i akcesoria personalizowane.`,
	"święta": `OKAZJA: BOŻE NARODZENIE / ŚWIĘTA.
Klimat świąteczny mile widziany: zestawy prezentowe, ciepłe dodatki,
gry planszowe na rodzinne wieczory, książki, kosmetyki w zestawach.`,
}

// guidanceFor matches the user's occasion text to a curated block.
func guidanceFor(occasion string) string {
	o := strings.ToLower(strings.TrimSpace(occasion))
	if o == "" {
		return ""
	}
	aliases := map[string]string{
		"chrzest":         "chrzciny",
		"chrzciny":        "chrzciny",
		"komunia":         "komunia",
		"bierzmowanie":    "komunia",
		"slub":            "ślub",
		"ślub":            "ślub",
		"wesele":          "ślub",
		"rocznica":        "rocznica",
		"urodziny":        "urodziny",
		"imieniny":        "imieniny",
		"święta":          "święta",
		"swieta":          "święta",
		"boże narodzenie": "święta",
		"mikołajki":       "święta",
	}
	for alias, key := range aliases {
		if strings.Contains(o, alias) {
			return occasionGuidance[key]
		}
	}
	return ""
}

// agePolicy returns the age-related instruction block. Adults get an
// explicit exclusion of children's categories; specific minor ages get
// age-appropriate guidance instead.
func agePolicy(age string) string {
	if age == "" {
		return ""
	}
	if IsAdultAge(age) {
		return `WIEK: OSOBA DOROSŁA (18+).
BEZWZGLĘDNY ZAKAZ produktów dziecięcych: żadnych zabawek, artykułów
"dla dzieci", gier z oznaczeniem wiekowym typu "3+", "5+", "8+",
pluszaków ani ubranek dziecięcych.`
	}
	bracket, ok := AgeBracket(age)
	if !ok {
		return ""
	}
	return fmt.Sprintf(`WIEK: %s lat (%s).
Proponuj wyłącznie produkty odpowiednie dla tego wieku — kategorie
edukacyjne, hobby i rozrywka dopasowane do etapu rozwoju.`, strings.TrimSpace(age), bracket)
}

const ideaResponseSchema = `Format odpowiedzi JSON:
{
  "prezenty": [
    {
      "searchQuery": "konkretna fraza do wyszukania w sklepie (np. 'powerbank 20000mah')",
      "description": "Dlaczego to dobry prezent (2-3 zdania)",
      "why": "Uzasadnienie wyboru (1-2 zdania)"
    }
  ]
}`

// BuildIdeaPrompt constructs the user instruction for one of the three
// intake modes.
func BuildIdeaPrompt(in PromptInput) string {
	switch in.Kind {
	case IntakeDescription:
		return buildDescriptionPrompt(in)
	case IntakeRandom:
		return buildRandomPrompt(in)
	default:
		return buildFormPrompt(in)
	}
}

func buildFormPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Jesteś ekspertem w doborze prezentów. Użytkownik wypełnił formularz:

Okazja: %s
Płeć: %s
`, in.Occasion, in.Gender)
	if in.Relationship != "" {
		fmt.Fprintf(&b, "Relacja: %s\n", in.Relationship)
	}
	if in.Age != "" {
		fmt.Fprintf(&b, "Wiek: %s\n", in.Age)
	}
	if in.Interests != "" {
		fmt.Fprintf(&b, "Zainteresowania: %s\n", in.Interests)
	}
	if in.Style != "" {
		fmt.Fprintf(&b, "Styl: %s\n", in.Style)
	}
	if in.GiftForm != "" {
		fmt.Fprintf(&b, "Forma prezentu: %s\n", in.GiftForm)
	}
	fmt.Fprintf(&b, "Budżet: %.0f - %.0f PLN\n", in.BudgetMin, in.BudgetMax)

	b.WriteString("\nZADANIE:\nWygeneruj 10-12 RÓŻNORODNYCH pomysłów na prezenty. Każdy pomysł powinien być z INNEJ kategorii.\n")
	writeCommonRules(&b, in)
	b.WriteString("\n" + ideaResponseSchema + "\n\nZwróć 10-12 RÓŻNYCH pomysłów z RÓŻNYCH kategorii produktów.")
	return b.String()
}

func buildDescriptionPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Jesteś ekspertem w doborze prezentów. Użytkownik opisał osobę/sytuację:

"%s"

Budżet: %.0f - %.0f PLN

ZADANIE:
Wygeneruj 10-12 RÓŻNORODNYCH pomysłów na prezenty pasujących do opisu.
`, in.FreeText, in.BudgetMin, in.BudgetMax)
	writeCommonRules(&b, in)
	b.WriteString("\n" + ideaResponseSchema + "\n\nZwróć 10-12 RÓŻNYCH pomysłów z RÓŻNYCH kategorii produktów.")
	return b.String()
}

func buildRandomPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Jesteś ekspertem w doborze prezentów. Wygeneruj 10-12 RÓŻNORODNYCH pomysłów na prezenty dla losowej osoby.

Budżet: %.0f - %.0f PLN

Mix kategorii: elektronika, książki, kosmetyki, sport, dom, kulinaria itp.
`, in.BudgetMin, in.BudgetMax)
	writeCommonRules(&b, in)
	b.WriteString("\n" + ideaResponseSchema + "\n\nZwróć 10-12 RÓŻNYCH pomysłów z RÓŻNYCH kategorii produktów.")
	return b.String()
}

func writeCommonRules(b *strings.Builder, in PromptInput) {
	fmt.Fprintf(b, `
KRYTYCZNIE WAŻNE:
1. Każdy pomysł musi mieć KONKRETNĄ frazę produktu do wyszukania (np. "słuchawki bezprzewodowe", "kawa ziarnista")
2. Różnorodność - NIE powtarzaj podobnych kategorii (np. jeśli jest "smartwatch", to nie dodawaj "opaska fitness")
3. Cena każdego pomysłu MUSI mieścić się w budżecie %.0f-%.0f PLN
`, in.BudgetMin, in.BudgetMax)
	if g := guidanceFor(in.Occasion); g != "" {
		b.WriteString("\n" + g + "\n")
	}
	if p := agePolicy(in.Age); p != "" {
		b.WriteString("\n" + p + "\n")
	}
}

const selectionResponseSchema = `Format odpowiedzi JSON:
{
  "wybrane": [
    {
      "offerId": "ID oferty z listy",
      "description": "Dlaczego to dobry prezent (2-3 zdania)",
      "why": "Uzasadnienie wyboru (1-2 zdania)"
    }
  ]
}`

// BuildSelectionPrompt enumerates pre-fetched marketplace listings and
// asks the model to pick the best fits for the audience.
func BuildSelectionPrompt(in SelectionInput) string {
	var b strings.Builder
	b.WriteString("Jesteś ekspertem w doborze prezentów. Poniżej lista REALNYCH ofert ze sklepu.\n\nOFERTY:\n")
	for _, l := range in.Listings {
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", l.ID, l.Name, l.Price)
	}
	b.WriteString("\nKONTEKST:\n")
	if in.Occasion != "" {
		fmt.Fprintf(&b, "Okazja: %s\n", in.Occasion)
	}
	if in.Gender != "" {
		fmt.Fprintf(&b, "Płeć: %s\n", in.Gender)
	}
	if in.Age != "" {
		fmt.Fprintf(&b, "Wiek: %s\n", in.Age)
	}
	if in.FreeText != "" {
		fmt.Fprintf(&b, "Opis: %s\n", in.FreeText)
	}
	fmt.Fprintf(&b, "Budżet: %.0f - %.0f PLN\n", in.BudgetMin, in.BudgetMax)

	b.WriteString(`
ZADANIE:
Wybierz 8-12 ofert z listy powyżej, które NAJLEPIEJ pasują do kontekstu.
Używaj WYŁĄCZNIE identyfikatorów ofert z listy. Nie wymyślaj ofert spoza listy.
Różnorodność kategorii jest ważniejsza niż liczba wybranych ofert.
`)
	if g := guidanceFor(in.Occasion); g != "" {
		b.WriteString("\n" + g + "\n")
	}
	if p := agePolicy(in.Age); p != "" {
		b.WriteString("\n" + p + "\n")
	}
	b.WriteString("\n" + selectionResponseSchema)
	return b.String()
}

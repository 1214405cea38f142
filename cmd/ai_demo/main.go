package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"giftgenie/internal/ai"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	ctx := context.Background()
	generator, err := ai.NewGeminiGenerator(ctx, apiKey, model)
	if err != nil {
		log.Fatalf("Failed to initialize AI generator: %v", err)
	}
	defer generator.Close()

	// Simulated form submission
	input := ai.PromptInput{
		Kind:         ai.IntakeForm,
		Occasion:     "urodziny",
		Gender:       "kobieta",
		Relationship: "siostra",
		Age:          "28",
		Interests:    "joga, gotowanie, kryminały",
		BudgetMin:    100,
		BudgetMax:    300,
	}
	fmt.Printf("Input: %s dla %s (%s lat), zainteresowania: %s\n",
		input.Occasion, input.Relationship, input.Age, input.Interests)

	ideas, err := generator.GenerateIdeas(ctx, input)
	if err != nil {
		log.Fatalf("Error generating ideas: %v", err)
	}

	for i, idea := range ideas {
		fmt.Printf("%d. %s\n", i+1, idea.Description)
		fmt.Printf("   query: %s\n", idea.SearchQuery)
		fmt.Printf("   why: %s\n", idea.Why)
	}
}

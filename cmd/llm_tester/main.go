// llm_tester is a smoke test for structured-output completions: it
// generates the intent schema, sends a sample query through the classifier
// path, and checks the response decodes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/agent"
	"github.com/nelli-lab/biorxiv_agent/pkg/llm"
)

func main() {
	cfg := config.Load()
	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}

	fmt.Println("=== Structured Output Smoke Test ===")

	fmt.Println("1. Generating JSON schema for the intent type...")
	schema, err := llm.GenerateSchema(agent.Intent{})
	if err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}
	fmt.Printf("Generated schema:\n%s\n", schema)

	fmt.Println("\n2. Classifying a sample query...")
	query := "find papers by Schulz and Shrestha from last week"
	content, err := llm.CompleteWithSchema(
		context.Background(),
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		schema,
		"You are a helpful research assistant. Classify the user's request.",
		query,
		cfg.ChatModel,
	)
	if err != nil {
		log.Fatalf("CompleteWithSchema failed: %v", err)
	}
	fmt.Printf("Response: %s\n", content)

	var intent agent.Intent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		log.Fatalf("Response is not a valid intent: %v", err)
	}
	fmt.Printf("\n✅ Decoded intent: action=%s query=%q use_last_paper=%v\n",
		intent.Action, intent.Params.Query, intent.Params.UseLastPaper)
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/agent"
)

func main() {
	cfg := config.Load()
	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}

	a := agent.New(cfg)

	fmt.Println("Welcome to the NeLLi Research Assistant!")
	fmt.Println("You can ask me to:")
	fmt.Println("1. Find recent papers (e.g., 'find papers by Schulz and Shrestha from last week')")
	fmt.Println("2. Summarize a paper (e.g., 'summarize paper with DOI 10.1101/2024.03.15.585123')")
	fmt.Println("3. Generate an image for a paper (e.g., 'generate image for paper with DOI 10.1101/2024.03.15.585123')")
	fmt.Println("\nType 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nWhat would you like me to do? ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			break
		}

		response := a.Handle(context.Background(), query)
		fmt.Println("\n" + response)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}

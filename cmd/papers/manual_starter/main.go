package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	papersflow "github.com/nelli-lab/biorxiv_agent/internal/workflows/papers"
	"go.temporal.io/sdk/client"
)

func main() {
	cfg := config.Load()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalln("Unable to create Temporal client", err)
	}
	defer c.Close()

	params := papersflow.WorkflowParams{
		StartDate:   os.Getenv("START_DATE"),
		EndDate:     os.Getenv("END_DATE"),
		PostForReal: os.Getenv("POST_FOR_REAL") == "true",
	}
	if authors := os.Getenv("TARGET_AUTHORS"); authors != "" {
		for _, author := range strings.Split(authors, ";") {
			if author = strings.TrimSpace(author); author != "" {
				params.TargetAuthors = append(params.TargetAuthors, author)
			}
		}
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "daily-papers-" + time.Now().Format("20060102-150405"),
		TaskQueue: cfg.TaskQueue,
	}

	log.Println("Starting DailyPapersWorkflow...")
	we, err := c.ExecuteWorkflow(context.Background(), workflowOptions, papersflow.DailyPapersWorkflow, params)
	if err != nil {
		log.Fatalln("Unable to execute DailyPapersWorkflow", err)
	}
	log.Printf("Started DailyPapersWorkflow: %s, RunID: %s\n", we.GetID(), we.GetRunID())

	var posts []string
	if err := we.Get(context.Background(), &posts); err != nil {
		log.Fatalln("DailyPapersWorkflow execution failed", err)
	}

	log.Printf("DailyPapersWorkflow completed with %d posts\n", len(posts))
	for i, post := range posts {
		log.Printf("Post %d:\n%s\n", i+1, post)
	}
}

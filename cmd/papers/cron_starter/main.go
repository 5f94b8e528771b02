package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	papersflow "github.com/nelli-lab/biorxiv_agent/internal/workflows/papers"
	"go.temporal.io/sdk/client"
)

func main() {
	cfg := config.Load()
	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}
	if err := cfg.RequireBluesky(); err != nil {
		log.Fatalln(err)
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalln("Unable to create Temporal client", err)
	}
	defer c.Close()

	params := papersflow.WorkflowParams{
		PostForReal: os.Getenv("POST_FOR_REAL") == "true",
	}

	scheduleID := "daily-papers-cron-" + time.Now().Format("20060102-150405")

	log.Println("Creating daily papers cron schedule...")
	_, err = c.ScheduleClient().Create(context.Background(), client.ScheduleOptions{
		ID: scheduleID,
		Spec: client.ScheduleSpec{
			// Once a day, after bioRxiv's morning posting batch settles.
			CronExpressions: []string{"0 9 * * *"},
			TimeZoneName:    "America/Los_Angeles",
		},
		Action: &client.ScheduleWorkflowAction{
			ID:        "daily-papers-scheduled",
			TaskQueue: cfg.TaskQueue,
			Workflow:  papersflow.DailyPapersWorkflow,
			Args:      []interface{}{params},
		},
	})
	if err != nil {
		log.Fatalln("Unable to create schedule", err)
	}

	log.Printf("Successfully created daily papers cron schedule: %s\n", scheduleID)
	log.Println("The workflow will run daily at 9:00 AM Pacific Time")
}

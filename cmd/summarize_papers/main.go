package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/summarize"
)

func main() {
	cfg := config.Load()

	var (
		logFile     = flag.String("log", cfg.NotificationLog, "notification log to read DOIs from")
		summaryFile = flag.String("summary-file", cfg.SummaryLog, "summary log to write")
	)
	flag.Parse()
	cfg.NotificationLog = *logFile
	cfg.SummaryLog = *summaryFile

	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}

	client := biorxiv.NewClient(cfg.BiorxivBaseURL, cfg.BiorxivServer)
	count, err := summarize.New(cfg, client).ProcessLog(context.Background())
	if err != nil {
		log.Fatalf("Error processing log file: %v", err)
	}
	fmt.Printf("Wrote %d summaries to %s\n", count, cfg.SummaryLog)
}

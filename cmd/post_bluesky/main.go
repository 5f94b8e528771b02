package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/bluesky"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

func main() {
	cfg := config.Load()

	var (
		summaryFile = flag.String("summary-file", cfg.SummaryLog, "summary log to post from")
		imageDir    = flag.String("image-dir", cfg.ImageDir, "directory holding image prompt artifacts")
		handle      = flag.String("handle", cfg.BlueskyHandle, "Bluesky handle (default: BLUESKY_HANDLE)")
		password    = flag.String("password", cfg.BlueskyPassword, "Bluesky app password (default: BLUESKY_PASSWORD)")
		// Conservative default so a full summary log is never mass-posted by accident.
		maxPosts = flag.Int("max-posts", 1, "maximum number of summaries to post")
		delay    = flag.Duration("delay", cfg.PostDelay, "pause between successive posts")
	)
	flag.Parse()

	if *handle == "" || *password == "" {
		log.Fatalln("Bluesky credentials are required: set -handle/-password or BLUESKY_HANDLE/BLUESKY_PASSWORD")
	}

	slog := &papers.SummaryLog{Path: *summaryFile}
	records, err := slog.Records()
	if err != nil {
		log.Fatalf("Error reading summary log: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No summaries found in the log file")
		return
	}
	fmt.Printf("Found %d summaries to post\n", len(records))

	client, err := bluesky.NewClientWithCredentials(*handle, *password)
	if err != nil {
		log.Fatalf("Error creating Bluesky client: %v", err)
	}
	if err := client.Login(); err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}

	posted, err := client.ProcessAll(records, *maxPosts, *delay, *imageDir)
	if err != nil {
		log.Fatalf("Error posting summaries: %v", err)
	}
	fmt.Printf("Posted %d summaries\n", posted)
}

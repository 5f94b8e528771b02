package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/images"
)

func main() {
	cfg := config.Load()

	var (
		logFile  = flag.String("log", cfg.NotificationLog, "notification log to read DOIs from")
		imageDir = flag.String("image-dir", cfg.ImageDir, "directory for prompt artifacts")
		render   = flag.Bool("render", false, "also call the image API and save PNGs (default: persist prompts only)")
	)
	flag.Parse()
	cfg.NotificationLog = *logFile
	cfg.ImageDir = *imageDir

	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}

	client := biorxiv.NewClient(cfg.BiorxivBaseURL, cfg.BiorxivServer)
	generator := images.New(cfg, client)
	generator.RenderImages = *render

	count, err := generator.ProcessLog(context.Background())
	if err != nil {
		log.Fatalf("Error processing log file: %v", err)
	}
	fmt.Printf("Wrote %d image prompts to %s\n", count, cfg.ImageDir)
}

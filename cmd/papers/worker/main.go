package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	papersflow "github.com/nelli-lab/biorxiv_agent/internal/workflows/papers"

	"go.temporal.io/sdk/client"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.RequireOpenAI(); err != nil {
		log.Fatalln(err)
	}

	// Show INFO and above; the Temporal SDK is chatty at DEBUG.
	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	temporalLogger := temporallog.NewStructuredLogger(slogLogger)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		panic(fmt.Errorf("unable to create Temporal client: %w", err))
	}
	defer c.Close()

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	w.RegisterWorkflow(papersflow.DailyPapersWorkflow)
	w.RegisterActivity(papersflow.NewActivities(cfg))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Printf("Received shutdown signal, stopping worker...\n")
		w.Stop()
	}()

	log.Printf("Starting papers worker on task queue: %s", cfg.TaskQueue)
	log.Printf("Temporal server: %s, namespace: %s", cfg.TemporalHostPort, cfg.TemporalNamespace)

	if err := w.Run(worker.InterruptCh()); err != nil {
		panic(fmt.Errorf("unable to start worker: %w", err))
	}

	log.Println("Worker stopped")
}

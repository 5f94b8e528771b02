package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

func main() {
	cfg := config.Load()

	var (
		startDate = flag.String("start", "", "start of the date range (YYYY-MM-DD, default: 7 days ago)")
		endDate   = flag.String("end", "", "end of the date range (YYYY-MM-DD, default: today)")
		authors   = flag.String("authors", "", "semicolon-separated target authors (default: the standing watch list)")
		logFile   = flag.String("log", cfg.NotificationLog, "notification log path")
	)
	flag.Parse()

	if *endDate == "" {
		*endDate = time.Now().Format("2006-01-02")
	}
	if *startDate == "" {
		*startDate = time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	}

	targets := papers.DefaultAuthorsOfInterest
	if *authors != "" {
		targets = nil
		for _, author := range strings.Split(*authors, ";") {
			if author = strings.TrimSpace(author); author != "" {
				targets = append(targets, author)
			}
		}
	}

	fmt.Printf("Searching for papers by authors: %s\n", strings.Join(targets, ", "))
	fmt.Printf("Date range: %s to %s\n", *startDate, *endDate)

	client := biorxiv.NewClient(cfg.BiorxivBaseURL, cfg.BiorxivServer)
	found := papers.NewSearcher(client, cfg.MaxPages).Search(*startDate, *endDate, targets)

	if len(found) == 0 {
		fmt.Println("\nNo papers found for any of the target authors")
		return
	}

	fmt.Printf("\nFound %d unique papers\n", len(found))
	for _, p := range found {
		fmt.Println("\n" + papers.Delimiter)
		fmt.Printf("Title: %s\n", p.Title)
		fmt.Println("Matching Authors:")
		for _, a := range p.Authors {
			fmt.Printf("  - %s (%s)\n", a.Name, a.Affiliation)
		}
		fmt.Printf("Date: %s\n", p.Date)
		fmt.Printf("DOI: %s\n", p.DOI)
		fmt.Println(papers.Delimiter)
	}

	nlog := &papers.NotificationLog{Path: *logFile}
	fresh, err := nlog.Append(found)
	if err != nil {
		log.Fatalf("Failed to log paper notifications: %v", err)
	}
	if len(fresh) == 0 {
		fmt.Println("\nNo new papers to log - all titles already exist in the log file")
		return
	}
	fmt.Printf("\nLogged %d new papers to %s\n", len(fresh), *logFile)
}

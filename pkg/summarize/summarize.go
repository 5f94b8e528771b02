// Package summarize turns logged papers into short social-media summaries
// via the chat-completion API.
package summarize

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/llm"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

// ErrorSentinel is recorded in place of a summary when the completion API
// fails, so the rest of a batch keeps going.
const ErrorSentinel = "Error generating summary"

const systemPrompt = "You are a scientific paper summarizer. Provide clear, concise summaries of scientific paper provided in exactly 300 words. I want the summary to be for social media, specifically bluesky, so it should be fun and engaging."

// Summarizer fetches paper details by DOI and produces social summaries.
type Summarizer struct {
	cfg    *config.Config
	client *biorxiv.Client
}

// New returns a Summarizer using the given configuration and source client.
func New(cfg *config.Config, client *biorxiv.Client) *Summarizer {
	return &Summarizer{cfg: cfg, client: client}
}

// BuildPrompt renders the summarization prompt from the paper's title and
// abstract. The full text is fetched with the detail but deliberately left
// out of the prompt to keep requests small.
func (s *Summarizer) BuildPrompt(detail *biorxiv.PaperDetail) string {
	return fmt.Sprintf("Please provide a 300-word summary of the following scientific paper:\n\nTitle: %s\n\nAbstract: %s\n\nSummary:",
		detail.CleanTitle(), detail.CleanAbstract())
}

// Summarize fetches a paper by DOI and generates its social summary. A
// model failure degrades to ErrorSentinel in the record rather than an
// error, so one bad completion does not abort a batch.
func (s *Summarizer) Summarize(ctx context.Context, doi string) (*papers.SummaryRecord, error) {
	detail, err := s.client.FetchDetail(doi)
	if err != nil {
		return nil, fmt.Errorf("fetching paper %s: %w", doi, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("no paper found for DOI %s", doi)
	}

	summary, err := llm.Complete(ctx, s.cfg.OpenAIAPIKey, s.cfg.OpenAIBaseURL,
		systemPrompt, s.BuildPrompt(detail), s.cfg.ChatModel, 0)
	if err != nil {
		log.Printf("Error generating summary for %s: %v", doi, err)
		summary = ErrorSentinel
	}

	return &papers.SummaryRecord{
		Title:   detail.CleanTitle(),
		DOI:     detail.DOI,
		Authors: detail.Authors,
		Summary: summary,
	}, nil
}

// ProcessLog summarizes every DOI recorded in the notification log and
// appends the results to the summary log. It returns the number of
// summaries written.
func (s *Summarizer) ProcessLog(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.cfg.NotificationLog)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Notification log %s does not exist, nothing to summarize", s.cfg.NotificationLog)
			return 0, nil
		}
		return 0, fmt.Errorf("reading notification log: %w", err)
	}

	dois := papers.ExtractDOIs(string(data))
	if len(dois) == 0 {
		log.Println("No DOIs found in notification log")
		return 0, nil
	}
	log.Printf("Found %d papers to summarize", len(dois))

	out := &papers.SummaryLog{Path: s.cfg.SummaryLog}
	count := 0
	for _, doi := range dois {
		log.Printf("Processing DOI: %s", doi)
		rec, err := s.Summarize(ctx, doi)
		if err != nil {
			log.Printf("Skipping %s: %v", doi, err)
			continue
		}
		if err := out.Append(*rec); err != nil {
			return count, fmt.Errorf("writing summary log: %w", err)
		}
		count++
	}
	return count, nil
}

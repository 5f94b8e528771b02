package papers

import (
	"context"
	"fmt"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/bluesky"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
	"github.com/nelli-lab/biorxiv_agent/pkg/summarize"
	"go.temporal.io/sdk/activity"
)

// Activities bundles the pipeline dependencies for Temporal registration.
// The worker constructs one instance with the process configuration.
type Activities struct {
	Config *config.Config
}

// NewActivities returns the activity set backed by cfg.
func NewActivities(cfg *config.Config) *Activities {
	return &Activities{Config: cfg}
}

// SearchAuthorsActivity walks the date-range listing for papers by the
// target authors.
func (a *Activities) SearchAuthorsActivity(ctx context.Context, startDate, endDate string, targets []string) ([]papers.MatchedPaper, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Executing SearchAuthorsActivity",
		"startDate", startDate,
		"endDate", endDate,
		"targetCount", len(targets))

	client := biorxiv.NewClient(a.Config.BiorxivBaseURL, a.Config.BiorxivServer)
	found := papers.NewSearcher(client, a.Config.MaxPages).Search(startDate, endDate, targets)

	logger.Info("SearchAuthorsActivity completed successfully",
		"papersFound", len(found))
	return found, nil
}

// AppendNotificationLogActivity records the matched papers in the
// notification log and returns the subset that was actually new.
func (a *Activities) AppendNotificationLogActivity(ctx context.Context, matched []papers.MatchedPaper) ([]papers.MatchedPaper, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Executing AppendNotificationLogActivity",
		"matchedCount", len(matched),
		"logFile", a.Config.NotificationLog)

	nlog := &papers.NotificationLog{Path: a.Config.NotificationLog}
	fresh, err := nlog.Append(matched)
	if err != nil {
		logger.Error("AppendNotificationLogActivity failed", "error", err)
		return nil, fmt.Errorf("failed to append to notification log: %w", err)
	}

	logger.Info("AppendNotificationLogActivity completed successfully",
		"newPapers", len(fresh))
	return fresh, nil
}

// SummarizeActivity generates the social summary for one DOI and records it
// in the summary log.
func (a *Activities) SummarizeActivity(ctx context.Context, doi string) (papers.SummaryRecord, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Executing SummarizeActivity", "doi", doi)

	client := biorxiv.NewClient(a.Config.BiorxivBaseURL, a.Config.BiorxivServer)
	rec, err := summarize.New(a.Config, client).Summarize(ctx, doi)
	if err != nil {
		logger.Error("SummarizeActivity failed", "error", err)
		return papers.SummaryRecord{}, fmt.Errorf("failed to summarize %s: %w", doi, err)
	}

	slog := &papers.SummaryLog{Path: a.Config.SummaryLog}
	if err := slog.Append(*rec); err != nil {
		logger.Error("SummarizeActivity could not write summary log", "error", err)
		return papers.SummaryRecord{}, fmt.Errorf("failed to write summary log: %w", err)
	}

	logger.Info("SummarizeActivity completed successfully",
		"doi", doi,
		"summaryLength", len(rec.Summary))
	return *rec, nil
}

// PostActivity publishes one post to Bluesky.
func (a *Activities) PostActivity(ctx context.Context, text string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Executing PostActivity", "textLength", len(text))

	if err := a.Config.RequireBluesky(); err != nil {
		return err
	}
	client, err := bluesky.NewClientWithCredentials(a.Config.BlueskyHandle, a.Config.BlueskyPassword)
	if err != nil {
		return fmt.Errorf("failed to create Bluesky client: %w", err)
	}
	if err := client.Login(); err != nil {
		logger.Error("PostActivity failed to authenticate", "error", err)
		return err
	}

	uri, err := client.Post(text)
	if err != nil {
		logger.Error("PostActivity failed to post", "error", err)
		return err
	}

	logger.Info("PostActivity completed successfully", "uri", uri)
	return nil
}

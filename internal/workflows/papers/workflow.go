package papers

import (
	"fmt"
	"time"

	"github.com/nelli-lab/biorxiv_agent/pkg/bluesky"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
	"go.temporal.io/sdk/workflow"
)

// WorkflowParams contains the parameters for DailyPapersWorkflow. API and
// Bluesky credentials come from the worker's configuration, not the params,
// so schedules never carry secrets.
type WorkflowParams struct {
	// StartDate/EndDate are YYYY-MM-DD; empty means yesterday/today.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// TargetAuthors overrides the default watch list when non-empty.
	TargetAuthors []string `json:"target_authors"`

	// PostForReal guards against accidental posting from test runs.
	PostForReal bool `json:"post_for_real"`

	// PostDelaySeconds paces successive Bluesky posts. Zero means 60.
	PostDelaySeconds int `json:"post_delay_seconds"`
}

// DailyPapersWorkflow finds new papers by the target authors, records them
// in the notification log, summarizes each newly discovered one, and posts
// the summaries to Bluesky with a fixed pause between posts. It returns the
// post texts that were (or would have been) published.
func DailyPapersWorkflow(ctx workflow.Context, params WorkflowParams) ([]string, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 120 * time.Second,
	})

	if params.EndDate == "" {
		params.EndDate = workflow.Now(ctx).Format("2006-01-02")
	}
	if params.StartDate == "" {
		params.StartDate = workflow.Now(ctx).AddDate(0, 0, -1).Format("2006-01-02")
	}
	if len(params.TargetAuthors) == 0 {
		params.TargetAuthors = papers.DefaultAuthorsOfInterest
	}
	delay := time.Duration(params.PostDelaySeconds) * time.Second
	if delay <= 0 {
		delay = 60 * time.Second
	}

	var a *Activities

	var found []papers.MatchedPaper
	err := workflow.ExecuteActivity(ctx, a.SearchAuthorsActivity,
		params.StartDate, params.EndDate, params.TargetAuthors).Get(ctx, &found)
	if err != nil {
		return nil, fmt.Errorf("failed to search for papers: %w", err)
	}
	if len(found) == 0 {
		workflow.GetLogger(ctx).Info("No papers found",
			"startDate", params.StartDate, "endDate", params.EndDate)
		return nil, nil
	}

	var fresh []papers.MatchedPaper
	err = workflow.ExecuteActivity(ctx, a.AppendNotificationLogActivity, found).Get(ctx, &fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to update notification log: %w", err)
	}
	if len(fresh) == 0 {
		workflow.GetLogger(ctx).Info("All discovered papers were already logged")
		return nil, nil
	}

	var posts []string
	for i, paper := range fresh {
		// fixed pacing between posts, never after the last one
		if i > 0 {
			if err := workflow.Sleep(ctx, delay); err != nil {
				return posts, err
			}
		}

		workflow.GetLogger(ctx).Info("Processing paper", "index", i, "doi", paper.DOI)

		var rec papers.SummaryRecord
		err := workflow.ExecuteActivity(ctx, a.SummarizeActivity, paper.DOI).Get(ctx, &rec)
		if err != nil {
			workflow.GetLogger(ctx).Error("Failed to summarize paper", "doi", paper.DOI, "error", err)
			// Continue with other papers even if one fails
			continue
		}

		text := bluesky.FormatPost(rec)
		posts = append(posts, text)

		if !params.PostForReal {
			workflow.GetLogger(ctx).Info("Skipping Bluesky post (PostForReal not set)", "doi", paper.DOI)
			continue
		}

		err = workflow.ExecuteActivity(ctx, a.PostActivity, text).Get(ctx, nil)
		if err != nil {
			workflow.GetLogger(ctx).Error("Failed to post summary", "doi", paper.DOI, "error", err)
			continue
		}
		workflow.GetLogger(ctx).Info("Posted summary", "doi", paper.DOI)
	}

	return posts, nil
}

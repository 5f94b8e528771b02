package bluesky

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

// FormatPost renders a summary record as Bluesky post text.
func FormatPost(rec papers.SummaryRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 New Paper Alert: %s\n\n", rec.Title)
	fmt.Fprintf(&b, "👥 Authors: %s\n\n", rec.Authors)
	fmt.Fprintf(&b, "🔍 Summary:\n%s\n\n", rec.Summary)
	fmt.Fprintf(&b, "🔗 DOI: %s\n\n", rec.DOI)
	b.WriteString("#Science #Research #Academic")
	return b.String()
}

// ArtifactPath returns the image-prompt artifact the generator would have
// written for this record's title, or "" when none exists. The lookup
// recomputes the title slug, so both sides stay in sync.
func ArtifactPath(imageDir, title string) string {
	if imageDir == "" {
		return ""
	}
	path := filepath.Join(imageDir, papers.Slug(title)+".txt")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// ProcessAll posts up to maxCount records in order, sleeping delay between
// posts but never after the last one. Per-record post failures are logged
// and skipped so one rejection does not abort the batch. It returns the
// number of successful posts.
func (c *Client) ProcessAll(records []papers.SummaryRecord, maxCount int, delay time.Duration, imageDir string) (int, error) {
	if !c.LoggedIn() {
		return 0, fmt.Errorf("not authenticated with Bluesky, call Login first")
	}
	if maxCount > 0 && len(records) > maxCount {
		records = records[:maxCount]
	}

	posted := 0
	for i, rec := range records {
		log.Printf("Processing paper %d/%d: %s", i+1, len(records), rec.Title)

		if artifact := ArtifactPath(imageDir, rec.Title); artifact != "" {
			log.Printf("Found image prompt artifact: %s", artifact)
		}

		if _, err := c.Post(FormatPost(rec)); err != nil {
			log.Printf("Failed to post summary for %q: %v", rec.Title, err)
		} else {
			posted++
		}

		if i < len(records)-1 {
			log.Printf("Waiting %s before next post...", delay)
			time.Sleep(delay)
		}
	}
	return posted, nil
}

package papers

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Delimiter separates records in the notification and summary logs. The
// exact run of '=' characters is load-bearing: ExtractRecords splits on it.
var Delimiter = strings.Repeat("=", 50)

const titlePrefix = "Title: "

// NotificationLog is the append-only text log of discovered papers. Its set
// of recorded titles is the de-facto "already notified" set, so appends are
// idempotent per title. Single writer only; concurrent appends can corrupt
// the delimiter structure.
type NotificationLog struct {
	Path string
}

// ExistingTitles returns the set of titles already recorded in the log. A
// missing log file is an empty set, not an error.
func (l *NotificationLog) ExistingTitles() (map[string]struct{}, error) {
	titles := make(map[string]struct{})
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return titles, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, titlePrefix) {
			titles[strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))] = struct{}{}
		}
	}
	return titles, nil
}

// Append records the papers whose titles are not already present and
// returns the subset it wrote. Empty input, or input whose titles are all
// already logged, writes nothing.
func (l *NotificationLog) Append(matched []MatchedPaper) ([]MatchedPaper, error) {
	if len(matched) == 0 {
		return nil, nil
	}

	existing, err := l.ExistingTitles()
	if err != nil {
		return nil, fmt.Errorf("reading notification log: %w", err)
	}

	var fresh []MatchedPaper
	for _, p := range matched {
		if _, ok := existing[p.Title]; !ok {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\n=== New Papers Found at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
	for _, p := range fresh {
		b.WriteString("\n" + Delimiter + "\n")
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
		b.WriteString("Matching Authors:\n")
		for _, a := range p.Authors {
			fmt.Fprintf(&b, "  - %s (%s)\n", a.Name, a.Affiliation)
		}
		fmt.Fprintf(&b, "Date: %s\n", p.Date)
		fmt.Fprintf(&b, "DOI: %s\n", p.DOI)
		b.WriteString(Delimiter + "\n")
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening notification log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return nil, fmt.Errorf("writing notification log: %w", err)
	}
	return fresh, nil
}

// SummaryLog persists SummaryRecord blocks in the format ExtractRecords
// reads back.
type SummaryLog struct {
	Path string
}

// Append writes one record block to the end of the log.
func (l *SummaryLog) Append(rec SummaryRecord) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatRecord(rec)); err != nil {
		return fmt.Errorf("writing summary log: %w", err)
	}
	return nil
}

// Records parses the log back into records. A missing file yields no
// records.
func (l *SummaryLog) Records() ([]SummaryRecord, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ExtractRecords(string(data)), nil
}

// FormatRecord renders rec as one delimited block. The Summary text is
// terminated by a blank line, which is what the parser keys on.
func FormatRecord(rec SummaryRecord) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	fmt.Fprintf(&b, "Title: %s\n", rec.Title)
	fmt.Fprintf(&b, "DOI: %s\n", rec.DOI)
	fmt.Fprintf(&b, "Authors: %s\n", rec.Authors)
	b.WriteString("Summary:\n")
	b.WriteString(rec.Summary)
	b.WriteString("\n\n")
	return b.String()
}

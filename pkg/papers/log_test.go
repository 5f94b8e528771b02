package papers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNotificationLogAppendIsIdempotent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "papers_log.txt")
	nlog := &NotificationLog{Path: logPath}

	matched := []MatchedPaper{
		{
			DOI:     "10.1101/2024.03.15.585123",
			Title:   "Giant virus diversity",
			Date:    "2024-03-15",
			Authors: []MatchedAuthor{{Name: "Schulz, F.", Affiliation: "LBL"}},
		},
		{
			DOI:     "10.1101/2024.03.16.585999",
			Title:   "Endosymbiont genomics",
			Date:    "2024-03-16",
			Authors: []MatchedAuthor{{Name: "Shrestha, B.", Affiliation: NoAffiliation}},
		},
	}

	fresh, err := nlog.Append(matched)
	if err != nil {
		t.Fatalf("first Append() error: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("first Append() wrote %d papers, want 2", len(fresh))
	}

	// Same papers again: nothing new to record.
	fresh, err = nlog.Append(matched)
	if err != nil {
		t.Fatalf("second Append() error: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("second Append() wrote %d papers, want 0", len(fresh))
	}

	// One repeat plus one genuinely new paper: only the new one is written.
	matched = append(matched, MatchedPaper{
		DOI:     "10.1101/2024.03.17.586001",
		Title:   "Phage defense islands",
		Date:    "2024-03-17",
		Authors: []MatchedAuthor{{Name: "Bowers, R.", Affiliation: "JGI"}},
	})
	fresh, err = nlog.Append(matched)
	if err != nil {
		t.Fatalf("third Append() error: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Title != "Phage defense islands" {
		t.Errorf("third Append() wrote %v, want just the new paper", fresh)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if got := strings.Count(string(data), "Title: Giant virus diversity"); got != 1 {
		t.Errorf("log contains %d copies of the first title, want 1", got)
	}
}

func TestNotificationLogAppendEmptyInput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "papers_log.txt")
	nlog := &NotificationLog{Path: logPath}

	fresh, err := nlog.Append(nil)
	if err != nil {
		t.Fatalf("Append(nil) error: %v", err)
	}
	if fresh != nil {
		t.Errorf("Append(nil) = %v, want nil", fresh)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Errorf("Append(nil) created the log file")
	}
}

func TestNotificationLogExistingTitlesMissingFile(t *testing.T) {
	nlog := &NotificationLog{Path: filepath.Join(t.TempDir(), "does_not_exist.txt")}
	titles, err := nlog.ExistingTitles()
	if err != nil {
		t.Fatalf("ExistingTitles() error: %v", err)
	}
	if len(titles) != 0 {
		t.Errorf("ExistingTitles() on a missing file = %v, want empty", titles)
	}
}

func TestNotificationLogRecordFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "papers_log.txt")
	nlog := &NotificationLog{Path: logPath}

	_, err := nlog.Append([]MatchedPaper{{
		DOI:     "10.1101/2024.03.15.585123",
		Title:   "Giant virus diversity",
		Date:    "2024-03-15",
		Authors: []MatchedAuthor{{Name: "Schulz, F.", Affiliation: "LBL"}},
	}})
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"=== New Papers Found at ",
		Delimiter,
		"Title: Giant virus diversity\n",
		"Matching Authors:\n",
		"  - Schulz, F. (LBL)\n",
		"Date: 2024-03-15\n",
		"DOI: 10.1101/2024.03.15.585123\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("log missing %q:\n%s", want, text)
		}
	}

	// The DOI line must be readable by the downstream extractor.
	dois := ExtractDOIs(text)
	if len(dois) != 1 || dois[0] != "10.1101/2024.03.15.585123" {
		t.Errorf("ExtractDOIs(log) = %v, want the appended DOI", dois)
	}
}

func TestSummaryLogRoundTrip(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "summaries.txt")
	slog := &SummaryLog{Path: logPath}

	recs := []SummaryRecord{
		{
			Title:   "Giant virus diversity",
			DOI:     "10.1101/2024.03.15.585123",
			Authors: "Schulz, F.; Doe, J.",
			Summary: "First line of the summary.\nSecond line of the summary.",
		},
		{
			Title:   "Endosymbiont genomics",
			DOI:     "10.1101/2024.03.16.585999",
			Authors: "Shrestha, B.",
			Summary: "A single-line summary.",
		},
	}
	for _, rec := range recs {
		if err := slog.Append(rec); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	got, err := slog.Records()
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("Records() returned %d records, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestSummaryLogRecordsMissingFile(t *testing.T) {
	slog := &SummaryLog{Path: filepath.Join(t.TempDir(), "missing.txt")}
	got, err := slog.Records()
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}
	if got != nil {
		t.Errorf("Records() on a missing file = %v, want nil", got)
	}
}

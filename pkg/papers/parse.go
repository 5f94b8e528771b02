package papers

import (
	"regexp"
	"strings"
)

// Sentinel values recorded when a log block is missing a labeled field.
const (
	UnknownTitle   = "Unknown Title"
	UnknownDOI     = "Unknown DOI"
	UnknownAuthors = "Unknown Authors"
)

var (
	titleRegexp   = regexp.MustCompile(`Title: (.*)`)
	doiRegexp     = regexp.MustCompile(`DOI: (.*)`)
	authorsRegexp = regexp.MustCompile(`Authors: (.*)`)
	summaryRegexp = regexp.MustCompile(`(?s)Summary:\n(.*?)(?:\n\n|$)`)

	// doiLineRegexp only accepts well-formed DOIs, so junk after the label
	// does not leak into downstream lookups.
	doiLineRegexp = regexp.MustCompile(`DOI: (10\.\d{4,9}/[-._;()/:A-Za-z0-9]+)`)
)

// SummaryRecord is one parsed block of the summary log.
type SummaryRecord struct {
	Title   string `json:"title"`
	DOI     string `json:"doi"`
	Authors string `json:"authors"`
	Summary string `json:"summary"`
}

// ExtractRecords splits logText on the record delimiter and pulls the
// labeled fields out of each block. Missing Title/DOI/Authors degrade to
// sentinels; a block with no Summary text is dropped entirely.
func ExtractRecords(logText string) []SummaryRecord {
	var records []SummaryRecord
	for _, block := range strings.Split(logText, Delimiter) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		rec := SummaryRecord{Title: UnknownTitle, DOI: UnknownDOI, Authors: UnknownAuthors}
		if m := titleRegexp.FindStringSubmatch(block); m != nil {
			rec.Title = strings.TrimSpace(m[1])
		}
		if m := doiRegexp.FindStringSubmatch(block); m != nil {
			rec.DOI = strings.TrimSpace(m[1])
		}
		if m := authorsRegexp.FindStringSubmatch(block); m != nil {
			rec.Authors = strings.TrimSpace(m[1])
		}

		m := summaryRegexp.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		rec.Summary = strings.TrimSpace(m[1])
		if rec.Summary == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// ExtractDOIs returns every well-formed DOI recorded with a "DOI: " label,
// in file order.
func ExtractDOIs(logText string) []string {
	var dois []string
	for _, m := range doiLineRegexp.FindAllStringSubmatch(logText, -1) {
		dois = append(dois, m[1])
	}
	return dois
}

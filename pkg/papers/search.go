package papers

import (
	"log"

	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
)

// DefaultMaxPages bounds the cursor walk in case the API never returns an
// empty page. The walk normally ends well before this on the first empty
// page.
const DefaultMaxPages = 200

// PageFetcher is the slice of the bioRxiv client the searcher needs.
type PageFetcher interface {
	FetchByDateRange(start, end string, cursor int) ([]biorxiv.Paper, error)
}

// Searcher walks the paginated date-range listing looking for papers by the
// target authors.
type Searcher struct {
	Client   PageFetcher
	MaxPages int
}

// NewSearcher returns a Searcher with the given page cap, or DefaultMaxPages
// when maxPages is not positive.
func NewSearcher(client PageFetcher, maxPages int) *Searcher {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Searcher{Client: client, MaxPages: maxPages}
}

// Search fetches pages one cursor at a time and keeps every paper with at
// least one matching author. Papers are deduplicated by DOI, first seen
// wins, and results come back in discovery order. The walk stops at the
// first page that is empty or fails to fetch.
func (s *Searcher) Search(startDate, endDate string, targets []string) []MatchedPaper {
	seen := make(map[string]struct{})
	var found []MatchedPaper

	for cursor := 0; cursor < s.MaxPages; cursor++ {
		page, err := s.Client.FetchByDateRange(startDate, endDate, cursor)
		if err != nil {
			log.Printf("Error fetching papers at cursor %d: %v", cursor, err)
			break
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			paper := &page[i]
			matched := MatchAuthors(targets, paper.Authors, paper.Affiliations)
			if len(matched) == 0 {
				continue
			}
			if _, ok := seen[paper.DOI]; ok {
				continue
			}
			seen[paper.DOI] = struct{}{}
			found = append(found, MatchedPaper{
				DOI:     paper.DOI,
				Title:   paper.CleanTitle(),
				Date:    paper.Date,
				Authors: matched,
			})
		}
	}
	return found
}

package papers

import (
	"errors"
	"testing"

	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
)

// fakeFetcher serves pre-built pages keyed by cursor and records how far the
// walk got.
type fakeFetcher struct {
	pages      map[int][]biorxiv.Paper
	errAt      int // cursor that returns an error; -1 disables
	lastCursor int
}

func (f *fakeFetcher) FetchByDateRange(start, end string, cursor int) ([]biorxiv.Paper, error) {
	f.lastCursor = cursor
	if f.errAt >= 0 && cursor == f.errAt {
		return nil, errors.New("boom")
	}
	return f.pages[cursor], nil
}

func paper(doi, title, authors, affiliations string) biorxiv.Paper {
	return biorxiv.Paper{
		DOI:          doi,
		Title:        title,
		Authors:      authors,
		Affiliations: affiliations,
		Date:         "2024-03-15",
	}
}

func TestSearchDeduplicatesByDOI(t *testing.T) {
	fetcher := &fakeFetcher{
		errAt: -1,
		pages: map[int][]biorxiv.Paper{
			0: {
				paper("10.1101/111", "Giant virus diversity", "Schulz, F.; Doe, J.", "LBL; MIT"),
				paper("10.1101/222", "Unrelated work", "Smith, A.", "Somewhere"),
			},
			1: {
				// Same DOI reappears on a later page; first seen wins.
				paper("10.1101/111", "Giant virus diversity", "Schulz, F.; Doe, J.", "LBL; MIT"),
				paper("10.1101/333", "Endosymbiont genomics", "Shrestha, B.", "LBL"),
			},
		},
	}

	s := NewSearcher(fetcher, 10)
	found := s.Search("2024-03-01", "2024-03-20", []string{"Schulz", "Shrestha"})

	if len(found) != 2 {
		t.Fatalf("Search() returned %d papers, want 2: %v", len(found), found)
	}
	if found[0].DOI != "10.1101/111" || found[1].DOI != "10.1101/333" {
		t.Errorf("Search() order = [%s, %s], want discovery order [10.1101/111, 10.1101/333]",
			found[0].DOI, found[1].DOI)
	}
	if found[0].Title != "Giant virus diversity" {
		t.Errorf("Title = %q, want %q", found[0].Title, "Giant virus diversity")
	}
}

func TestSearchStopsAtFirstEmptyPage(t *testing.T) {
	fetcher := &fakeFetcher{
		errAt: -1,
		pages: map[int][]biorxiv.Paper{
			0: {paper("10.1101/111", "A", "Schulz, F.", "LBL")},
			// cursor 1 is empty; cursor 2 must never be reached
			2: {paper("10.1101/999", "Should not appear", "Schulz, F.", "LBL")},
		},
	}

	s := NewSearcher(fetcher, 10)
	found := s.Search("2024-03-01", "2024-03-20", []string{"Schulz"})

	if len(found) != 1 {
		t.Fatalf("Search() returned %d papers, want 1", len(found))
	}
	if fetcher.lastCursor != 1 {
		t.Errorf("walk stopped at cursor %d, want 1", fetcher.lastCursor)
	}
}

func TestSearchStopsOnFetchError(t *testing.T) {
	fetcher := &fakeFetcher{
		errAt: 1,
		pages: map[int][]biorxiv.Paper{
			0: {paper("10.1101/111", "A", "Schulz, F.", "LBL")},
		},
	}

	s := NewSearcher(fetcher, 10)
	found := s.Search("2024-03-01", "2024-03-20", []string{"Schulz"})

	if len(found) != 1 {
		t.Errorf("Search() returned %d papers, want the 1 found before the error", len(found))
	}
}

func TestSearchRespectsPageCap(t *testing.T) {
	// Every cursor returns a non-empty page of non-matching papers, so only
	// the cap can end the walk.
	pages := make(map[int][]biorxiv.Paper)
	for i := 0; i < 100; i++ {
		pages[i] = []biorxiv.Paper{paper("10.1101/x", "X", "Nobody", "")}
	}
	fetcher := &fakeFetcher{errAt: -1, pages: pages}

	s := NewSearcher(fetcher, 3)
	s.Search("2024-03-01", "2024-03-20", []string{"Schulz"})

	if fetcher.lastCursor != 2 {
		t.Errorf("walk reached cursor %d, want 2 with MaxPages=3", fetcher.lastCursor)
	}
}

func TestNewSearcherDefaultsPageCap(t *testing.T) {
	s := NewSearcher(&fakeFetcher{errAt: -1}, 0)
	if s.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want %d", s.MaxPages, DefaultMaxPages)
	}
}

// Package papers holds the author-matching, pagination, and log persistence
// logic that connects the bioRxiv client to the summarization and posting
// stages.
package papers

import "strings"

// NoAffiliation is recorded when the affiliation list is shorter than the
// author list or the slot is blank.
const NoAffiliation = "No affiliation listed"

// DefaultAuthorsOfInterest is the standing watch list used when a run does
// not name its own targets.
var DefaultAuthorsOfInterest = []string{
	"Schulz, F.",
	"Shrestha, B.",
	"Vasquez, Y.M.",
	"Villada, J. C.",
	"Romero, M. F.",
	"Bowers, R.",
}

// MatchedAuthor is one author from a paper that matched the watch list,
// paired with the affiliation at the same position.
type MatchedAuthor struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
}

// MatchedPaper is a paper with at least one matching author. DOI is the
// dedup key during a search run.
type MatchedPaper struct {
	DOI     string          `json:"doi"`
	Title   string          `json:"title"`
	Date    string          `json:"date"`
	Authors []MatchedAuthor `json:"matching_authors"`
}

// MatchAuthors returns every author from the semicolon-delimited author list
// that contains one of the target strings as a substring, in list order.
//
// Matching is raw, case-sensitive containment: the target "Schulz" matches
// "Schulz, F." and any longer variant. Author formatting varies across
// records (middle initials, spacing), so containment is the deliberate
// policy; targets with stray punctuation will silently miss.
func MatchAuthors(targets []string, authors, affiliations string) []MatchedAuthor {
	names := strings.Split(authors, ";")
	affs := strings.Split(affiliations, ";")

	var matched []MatchedAuthor
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, target := range targets {
			target = strings.TrimSpace(target)
			if target == "" || !strings.Contains(name, target) {
				continue
			}
			affiliation := NoAffiliation
			if i < len(affs) {
				if aff := strings.TrimSpace(affs[i]); aff != "" {
					affiliation = aff
				}
			}
			matched = append(matched, MatchedAuthor{Name: name, Affiliation: affiliation})
			break
		}
	}
	return matched
}

package papers

import (
	"reflect"
	"testing"
)

func TestMatchAuthors(t *testing.T) {
	testCases := []struct {
		name         string
		targets      []string
		authors      string
		affiliations string
		want         []MatchedAuthor
	}{
		{
			name:         "Single match with affiliation",
			targets:      []string{"Schulz, F."},
			authors:      "Schulz, F.; Doe, J.",
			affiliations: "LBL; MIT",
			want:         []MatchedAuthor{{Name: "Schulz, F.", Affiliation: "LBL"}},
		},
		{
			name:         "Substring containment matches longer variants",
			targets:      []string{"Schulz"},
			authors:      "Schulz, F. A.; Doe, J.",
			affiliations: "JGI; MIT",
			want:         []MatchedAuthor{{Name: "Schulz, F. A.", Affiliation: "JGI"}},
		},
		{
			name:         "Case sensitive, no match",
			targets:      []string{"schulz"},
			authors:      "Schulz, F.",
			affiliations: "LBL",
			want:         nil,
		},
		{
			name:         "Affiliation list shorter than author list",
			targets:      []string{"Doe"},
			authors:      "Schulz, F.; Doe, J.",
			affiliations: "LBL",
			want:         []MatchedAuthor{{Name: "Doe, J.", Affiliation: NoAffiliation}},
		},
		{
			name:         "Blank affiliation slot falls back to sentinel",
			targets:      []string{"Doe"},
			authors:      "Schulz, F.; Doe, J.",
			affiliations: "LBL; ",
			want:         []MatchedAuthor{{Name: "Doe, J.", Affiliation: NoAffiliation}},
		},
		{
			name:         "Multiple matches preserve author list order",
			targets:      []string{"Shrestha", "Schulz"},
			authors:      "Schulz, F.; Vasquez, Y.M.; Shrestha, B.",
			affiliations: "LBL; UC Davis; LBL",
			want: []MatchedAuthor{
				{Name: "Schulz, F.", Affiliation: "LBL"},
				{Name: "Shrestha, B.", Affiliation: "LBL"},
			},
		},
		{
			name:         "Author matching two targets is recorded once",
			targets:      []string{"Schulz", "F."},
			authors:      "Schulz, F.",
			affiliations: "LBL",
			want:         []MatchedAuthor{{Name: "Schulz, F.", Affiliation: "LBL"}},
		},
		{
			name:         "Empty target strings are skipped",
			targets:      []string{"", "  "},
			authors:      "Schulz, F.",
			affiliations: "LBL",
			want:         nil,
		},
		{
			name:         "Empty author string yields nothing",
			targets:      []string{"Schulz"},
			authors:      "",
			affiliations: "",
			want:         nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchAuthors(tc.targets, tc.authors, tc.affiliations)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("MatchAuthors() = %v, want %v", got, tc.want)
			}
		})
	}
}

package papers

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "Spaces become underscores",
			title: "Giant virus diversity",
			want:  "Giant_virus_diversity",
		},
		{
			name:  "Punctuation is stripped",
			title: "CRISPR-Cas9: a review (2024)!",
			want:  "CRISPR_Cas9_a_review_2024",
		},
		{
			name:  "Runs of separators collapse",
			title: "one  -  two --- three",
			want:  "one_two_three",
		},
		{
			name:  "Leading and trailing separators trimmed",
			title: "  - padded title - ",
			want:  "padded_title",
		},
		{
			name:  "Long titles truncate to 50 bytes",
			title: strings.Repeat("abcde ", 20),
			want:  strings.Repeat("abcde_", 8) + "ab",
		},
		{
			name:  "Empty title",
			title: "",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slug(tc.title)
			if got != tc.want {
				t.Errorf("Slug(%q) = %q, want %q", tc.title, got, tc.want)
			}
			if len(got) > 50 {
				t.Errorf("Slug(%q) is %d bytes, want at most 50", tc.title, len(got))
			}
			// The poster recomputes the slug to find artifacts, so it must
			// be stable.
			if again := Slug(tc.title); again != got {
				t.Errorf("Slug is not deterministic: %q then %q", got, again)
			}
		})
	}
}

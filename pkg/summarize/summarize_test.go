package summarize

import (
	"strings"
	"testing"

	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
)

func TestBuildPrompt(t *testing.T) {
	s := &Summarizer{}
	detail := &biorxiv.PaperDetail{
		Paper: biorxiv.Paper{
			Title:    "  Giant virus\n diversity  ",
			Abstract: "We   found\nbig viruses.",
		},
		FullText: "full text that must stay out of the prompt",
	}

	prompt := s.BuildPrompt(detail)

	if !strings.Contains(prompt, "Title: Giant virus diversity") {
		t.Errorf("prompt missing cleaned title:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Abstract: We found big viruses.") {
		t.Errorf("prompt missing cleaned abstract:\n%s", prompt)
	}
	if strings.Contains(prompt, detail.FullText) {
		t.Errorf("prompt must not include the full text:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Summary:") {
		t.Errorf("prompt should end with the completion cue, got:\n%s", prompt)
	}
}

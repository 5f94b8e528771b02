package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

func TestBuildPrompt(t *testing.T) {
	g := &Generator{}
	detail := &biorxiv.PaperDetail{
		Paper: biorxiv.Paper{
			Title:    "Giant virus diversity",
			Abstract: "We found big viruses.",
		},
	}

	prompt := g.BuildPrompt(detail)
	if !strings.Contains(prompt, "Title: Giant virus diversity") {
		t.Errorf("prompt missing title:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Abstract: We found big viruses.") {
		t.Errorf("prompt missing abstract:\n%s", prompt)
	}
}

func TestPromptPathUsesSlug(t *testing.T) {
	g := &Generator{cfg: &config.Config{ImageDir: "artifacts"}}
	title := "CRISPR-Cas9: a review (2024)!"

	want := filepath.Join("artifacts", papers.Slug(title)+".txt")
	if got := g.PromptPath(title); got != want {
		t.Errorf("PromptPath(%q) = %q, want %q", title, got, want)
	}
}

func TestSavePrompt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	g := &Generator{cfg: &config.Config{ImageDir: dir}}

	title := "Giant virus diversity"
	path, err := g.SavePrompt(title, "A sweeping illustration of giant viruses.")
	if err != nil {
		t.Fatalf("SavePrompt() error: %v", err)
	}
	if path != g.PromptPath(title) {
		t.Errorf("SavePrompt() path = %q, want %q", path, g.PromptPath(title))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	want := "Image prompt for: Giant virus diversity\n\nA sweeping illustration of giant viruses."
	if string(data) != want {
		t.Errorf("artifact = %q, want %q", data, want)
	}
}

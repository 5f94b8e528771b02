// Package images derives illustrative image prompts for papers and stores
// them as slug-keyed artifact files. Rendering the image itself is optional
// and off by default; the persisted prompt is the primary artifact.
package images

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/llm"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
)

const systemPrompt = "You are an expert at creating detailed image generation prompts for scientific papers. Your prompts should be specific, descriptive, and focus on the visual elements that best represent the paper's main findings."

// httpClient downloads rendered images.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Generator produces image prompts (and optionally images) for papers.
type Generator struct {
	cfg    *config.Config
	client *biorxiv.Client

	// RenderImages also calls the image API and saves the PNG next to the
	// prompt artifact.
	RenderImages bool
}

// New returns a Generator using the given configuration and source client.
func New(cfg *config.Config, client *biorxiv.Client) *Generator {
	return &Generator{cfg: cfg, client: client}
}

// BuildPrompt renders the instruction that asks the chat model for an image
// generation prompt.
func (g *Generator) BuildPrompt(detail *biorxiv.PaperDetail) string {
	return fmt.Sprintf("Based on the following scientific paper title and abstract, generate an image that visually represents the key concepts:\n\nTitle: %s\n\nAbstract: %s\n\nCreate a simple yet graphically pleasing image generation prompt that captures the essence of this scientific paper. The prompt should be specific, descriptive, and suitable for an AI image generation model. Focus on the visual elements that would best represent the paper's main findings or concepts.",
		detail.CleanTitle(), detail.CleanAbstract())
}

// GeneratePrompt asks the chat model for an image prompt, degrading to a
// generic fallback on failure.
func (g *Generator) GeneratePrompt(ctx context.Context, detail *biorxiv.PaperDetail) string {
	prompt, err := llm.Complete(ctx, g.cfg.OpenAIAPIKey, g.cfg.OpenAIBaseURL,
		systemPrompt, g.BuildPrompt(detail), g.cfg.ChatModel, 0)
	if err != nil {
		log.Printf("Error generating image prompt: %v", err)
		return "Scientific illustration of " + detail.CleanTitle()
	}
	return prompt
}

// PromptPath returns the artifact path for a title. The poster recomputes
// the same slug to find the artifact later, so the naming must stay in
// lockstep with papers.Slug.
func (g *Generator) PromptPath(title string) string {
	return filepath.Join(g.cfg.ImageDir, papers.Slug(title)+".txt")
}

// SavePrompt persists the prompt for title and returns the artifact path.
func (g *Generator) SavePrompt(title, prompt string) (string, error) {
	if err := os.MkdirAll(g.cfg.ImageDir, 0o755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}
	path := g.PromptPath(title)
	content := fmt.Sprintf("Image prompt for: %s\n\n%s", title, prompt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("saving image prompt: %w", err)
	}
	return path, nil
}

// Generate produces and stores the image prompt for one DOI. It returns the
// prompt and the artifact path. A render failure is logged, not returned;
// the prompt artifact is the contract.
func (g *Generator) Generate(ctx context.Context, doi string) (string, string, error) {
	detail, err := g.client.FetchDetail(doi)
	if err != nil {
		return "", "", fmt.Errorf("fetching paper %s: %w", doi, err)
	}
	if detail == nil {
		return "", "", fmt.Errorf("no paper found for DOI %s", doi)
	}

	prompt := g.GeneratePrompt(ctx, detail)
	path, err := g.SavePrompt(detail.CleanTitle(), prompt)
	if err != nil {
		return "", "", err
	}
	log.Printf("Prompt saved to: %s", path)

	if g.RenderImages {
		if err := g.renderImage(ctx, detail.CleanTitle(), prompt); err != nil {
			log.Printf("Could not render image for %s: %v", doi, err)
		}
	}
	return prompt, path, nil
}

// renderImage calls the image API and downloads the result next to the
// prompt artifact.
func (g *Generator) renderImage(ctx context.Context, title, prompt string) error {
	url, err := llm.GenerateImage(ctx, g.cfg.OpenAIAPIKey, g.cfg.OpenAIBaseURL, g.cfg.ImageModel, prompt)
	if err != nil {
		return err
	}

	res, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("downloading image: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading image: %s", res.Status)
	}

	path := filepath.Join(g.cfg.ImageDir, papers.Slug(title)+".png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, res.Body); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	log.Printf("Image saved to: %s", path)
	return nil
}

// ProcessLog generates a prompt artifact for every DOI in the notification
// log, pausing one second between papers to stay under rate limits. It
// returns the number of artifacts written.
func (g *Generator) ProcessLog(ctx context.Context) (int, error) {
	data, err := os.ReadFile(g.cfg.NotificationLog)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Notification log %s does not exist, nothing to process", g.cfg.NotificationLog)
			return 0, nil
		}
		return 0, fmt.Errorf("reading notification log: %w", err)
	}

	dois := papers.ExtractDOIs(string(data))
	if len(dois) == 0 {
		log.Println("No DOIs found in notification log")
		return 0, nil
	}
	log.Printf("Found %d papers to process", len(dois))

	count := 0
	for i, doi := range dois {
		log.Printf("Processing DOI: %s", doi)
		if _, _, err := g.Generate(ctx, doi); err != nil {
			log.Printf("Skipping %s: %v", doi, err)
		} else {
			count++
		}
		if i < len(dois)-1 {
			time.Sleep(time.Second)
		}
	}
	return count, nil
}

// Package agent routes free-text requests to the paper search,
// summarization, and image-generation components. Intent classification is
// delegated to the chat-completion API constrained to a fixed JSON schema;
// anything that fails to decode becomes the unknown action, never a crash.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nelli-lab/biorxiv_agent/internal/config"
	"github.com/nelli-lab/biorxiv_agent/pkg/biorxiv"
	"github.com/nelli-lab/biorxiv_agent/pkg/images"
	"github.com/nelli-lab/biorxiv_agent/pkg/llm"
	"github.com/nelli-lab/biorxiv_agent/pkg/papers"
	"github.com/nelli-lab/biorxiv_agent/pkg/summarize"
)

// Action names the operations the router can dispatch to.
type Action string

const (
	ActionFindPapers    Action = "find_papers"
	ActionSummarize     Action = "summarize_paper"
	ActionGenerateImage Action = "generate_image"
	ActionUnknown       Action = "unknown"
)

// Intent is the structured classification the model must return.
type Intent struct {
	Action Action       `json:"action" jsonschema:"required,enum=find_papers,enum=summarize_paper,enum=generate_image,enum=unknown,description=The operation the user asked for"`
	Params IntentParams `json:"params" jsonschema:"required"`
}

// IntentParams carries the extracted parameters for an action. Dates are
// ISO calendar dates; empty means not specified.
type IntentParams struct {
	Query        string `json:"query" jsonschema:"description=The text to act on: author names for a search or a DOI for a lookup"`
	StartDate    string `json:"start_date" jsonschema:"description=Start of the date range in YYYY-MM-DD form when the user gave one"`
	EndDate      string `json:"end_date" jsonschema:"description=End of the date range in YYYY-MM-DD form when the user gave one"`
	UseLastPaper bool   `json:"use_last_paper" jsonschema:"required,description=True when the user refers to the previously discussed paper instead of naming one"`
}

const classifierPrompt = `You are a helpful research assistant for the NeLLi group.
Your task is to understand what the user wants to do and classify it.
You can help with:
1. Finding recent papers from specific authors (with optional date range)
2. Summarizing papers (requires a DOI)
3. Generating images for papers (requires a DOI)

For date ranges, resolve natural language like "last week", "last month",
"from 2024-01-01 to 2024-03-31", or "between 2024-01-01 and 2024-03-31"
into concrete YYYY-MM-DD dates.

If the user wants to summarize or generate an image for a paper without
providing a DOI, set use_last_paper to true so the previously found paper
is used.

If you can't determine what the user wants, use the "unknown" action and
echo the original query.`

const helpText = "I'm not sure what you want to do. You can ask me to:\n" +
	"1. Find recent papers (e.g., 'find papers by Schulz and Shrestha from last week')\n" +
	"2. Summarize a paper (e.g., 'summarize paper with DOI 10.1101/2024.03.15.585123')\n" +
	"3. Generate an image for a paper (e.g., 'generate image for paper with DOI 10.1101/2024.03.15.585123')"

const rephraseText = "I had trouble understanding your request. Please try again with a clearer query."

// Agent carries the pipeline components plus the DOI of the last paper
// discussed, so follow-up requests need no explicit identifier. One Agent
// serves one interactive session; it is not safe for concurrent use.
type Agent struct {
	cfg        *config.Config
	searcher   *papers.Searcher
	summarizer *summarize.Summarizer
	generator  *images.Generator

	authors      []string
	lastPaperDOI string
}

// New builds an Agent wired to the configured bioRxiv server, seeded with
// the default authors-of-interest watch list.
func New(cfg *config.Config) *Agent {
	client := biorxiv.NewClient(cfg.BiorxivBaseURL, cfg.BiorxivServer)
	return &Agent{
		cfg:        cfg,
		searcher:   papers.NewSearcher(client, cfg.MaxPages),
		summarizer: summarize.New(cfg, client),
		generator:  images.New(cfg, client),
		authors:    append([]string(nil), papers.DefaultAuthorsOfInterest...),
	}
}

// AddAuthorOfInterest adds a name to the watch list. Duplicates and blanks
// are ignored.
func (a *Agent) AddAuthorOfInterest(author string) {
	author = strings.TrimSpace(author)
	if author == "" {
		return
	}
	for _, existing := range a.authors {
		if existing == author {
			return
		}
	}
	a.authors = append(a.authors, author)
}

// LastPaperDOI returns the DOI of the most recently discovered or discussed
// paper, or "".
func (a *Agent) LastPaperDOI() string {
	return a.lastPaperDOI
}

// Handle classifies a free-text query and dispatches it. Classification
// failures are answered with a rephrase message; unknown actions with the
// help text.
func (a *Agent) Handle(ctx context.Context, query string) string {
	intent, err := a.classify(ctx, query)
	if err != nil {
		log.Printf("Could not classify query: %v", err)
		return rephraseText
	}

	switch intent.Action {
	case ActionFindPapers:
		return a.findPapers(intent.Params)
	case ActionSummarize:
		return a.summarizePaper(ctx, a.resolveDOI(intent.Params))
	case ActionGenerateImage:
		return a.generateImage(ctx, a.resolveDOI(intent.Params))
	default:
		return helpText
	}
}

// classify asks the model for an Intent constrained to the generated JSON
// schema.
func (a *Agent) classify(ctx context.Context, query string) (*Intent, error) {
	schema, err := llm.GenerateSchema(Intent{})
	if err != nil {
		return nil, fmt.Errorf("generating intent schema: %w", err)
	}

	content, err := llm.CompleteWithSchema(ctx, a.cfg.OpenAIAPIKey, a.cfg.OpenAIBaseURL,
		schema, classifierPrompt, query, a.cfg.ChatModel)
	if err != nil {
		return nil, err
	}

	// Some models wrap the object in a markdown fence despite the schema.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var intent Intent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return nil, fmt.Errorf("decoding intent: %w", err)
	}
	return &intent, nil
}

// resolveDOI picks the DOI for a follow-up action: an explicit DOI in the
// query wins, then the last paper discussed.
func (a *Agent) resolveDOI(params IntentParams) string {
	if doi := biorxiv.ExtractDOI(params.Query); doi != "" {
		return doi
	}
	if params.UseLastPaper || params.Query == "" {
		return a.lastPaperDOI
	}
	return ""
}

// findPapers runs a search for the named (or default) authors, records new
// discoveries in the notification log, and formats the results.
func (a *Agent) findPapers(params IntentParams) string {
	authors := ParseAuthors(params.Query)
	if len(authors) == 0 {
		authors = a.authors
	} else {
		for _, author := range authors {
			a.AddAuthorOfInterest(author)
		}
	}

	start, end := params.StartDate, params.EndDate
	if end == "" {
		end = time.Now().Format("2006-01-02")
	}
	if start == "" {
		start = time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	}

	found := a.searcher.Search(start, end, authors)
	if len(found) == 0 {
		return fmt.Sprintf("No papers found for authors %s between %s and %s.",
			strings.Join(authors, ", "), start, end)
	}
	a.lastPaperDOI = found[0].DOI

	nlog := &papers.NotificationLog{Path: a.cfg.NotificationLog}
	fresh, err := nlog.Append(found)
	switch {
	case err != nil:
		log.Printf("Failed to log paper notifications: %v", err)
	case len(fresh) == 0:
		log.Println("No new papers to log - all titles already exist in the log file")
	default:
		log.Printf("Logged %d new papers to %s", len(fresh), a.cfg.NotificationLog)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d papers for authors: %s\n", len(found), strings.Join(authors, ", "))
	fmt.Fprintf(&b, "Date range: %s to %s\n\n", start, end)
	for _, p := range found {
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
		b.WriteString("Authors:\n")
		for _, author := range p.Authors {
			fmt.Fprintf(&b, "  - %s (%s)\n", author.Name, author.Affiliation)
		}
		fmt.Fprintf(&b, "Date: %s\n", p.Date)
		fmt.Fprintf(&b, "DOI: %s\n", p.DOI)
		b.WriteString(papers.Delimiter + "\n")
	}
	b.WriteString("\nYou can now ask me to 'summarize this paper' or 'generate an image for this paper'.")
	return b.String()
}

func (a *Agent) summarizePaper(ctx context.Context, doi string) string {
	if doi == "" {
		return "No valid DOI found in the query."
	}
	rec, err := a.summarizer.Summarize(ctx, doi)
	if err != nil {
		log.Printf("Summarize failed: %v", err)
		return "Could not fetch paper data for the given DOI."
	}
	a.lastPaperDOI = doi
	return rec.Summary
}

func (a *Agent) generateImage(ctx context.Context, doi string) string {
	if doi == "" {
		return "No valid DOI found in the query."
	}
	prompt, _, err := a.generator.Generate(ctx, doi)
	if err != nil {
		log.Printf("Image generation failed: %v", err)
		return "Could not fetch paper data for the given DOI."
	}
	a.lastPaperDOI = doi
	return fmt.Sprintf("Image generated successfully. Prompt used: %s", prompt)
}

// ParseAuthors splits the free-text author portion of a search query into
// individual names. Conjunctions become separators and common lead-in words
// are stripped.
func ParseAuthors(query string) []string {
	normalized := strings.ReplaceAll(query, " and ", ",")
	normalized = strings.ReplaceAll(normalized, "&", ",")

	var authors []string
	for _, part := range strings.Split(normalized, ",") {
		author := strings.TrimSpace(part)
		for _, prefix := range []string{"by ", "from ", "author "} {
			author = strings.TrimPrefix(author, prefix)
		}
		author = strings.TrimSpace(author)
		if author != "" {
			authors = append(authors, author)
		}
	}
	return authors
}

// Package biorxiv provides a client for the bioRxiv details API, plus
// helpers for pulling full text and DOIs out of papers.
package biorxiv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// DefaultBaseURL is the public bioRxiv API host.
const DefaultBaseURL = "https://api.biorxiv.org"

// DefaultServer selects the preprint server to query ("biorxiv" or "medrxiv").
const DefaultServer = "biorxiv"

// contentBaseURL hosts the rendered papers and their PDFs.
const contentBaseURL = "https://www.biorxiv.org/content"

// httpClient is a shared HTTP client with a timeout for all requests.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// whitespaceRegex is used to normalize titles and abstracts.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// DOIRegexp matches a DOI anywhere in free text: the "10." prefix, a 4-9
// digit registrant code, and an unreserved-character suffix.
var DOIRegexp = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`)

// ExtractDOI returns the first DOI found in text, or "" when there is none.
func ExtractDOI(text string) string {
	return DOIRegexp.FindString(text)
}

// Paper represents a single record from the bioRxiv details API. Authors and
// Affiliations are semicolon-delimited and positionally aligned.
type Paper struct {
	DOI                      string `json:"doi"`
	Title                    string `json:"title"`
	Authors                  string `json:"authors"`
	Affiliations             string `json:"affiliations"`
	CorrespondingAuthor      string `json:"author_corresponding"`
	CorrespondingInstitution string `json:"author_corresponding_institution"`
	Date                     string `json:"date"`
	Category                 string `json:"category"`
	Abstract                 string `json:"abstract"`
	Server                   string `json:"server"`
	JATSXML                  string `json:"jatsxml"`
	Published                string `json:"published"`
}

// CleanTitle removes extra whitespace from the title.
func (p *Paper) CleanTitle() string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(p.Title), " ")
}

// CleanAbstract removes extra whitespace from the abstract.
func (p *Paper) CleanAbstract() string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(p.Abstract), " ")
}

// PaperDetail is a Paper plus its full text, when it could be retrieved.
type PaperDetail struct {
	Paper
	FullText string
}

// apiResponse is the envelope every details endpoint returns.
type apiResponse struct {
	Collection []Paper `json:"collection"`
}

// Client issues requests against one bioRxiv API host and preprint server.
type Client struct {
	BaseURL string
	Server  string
}

// NewClient returns a client for the given host and server, falling back to
// the public bioRxiv defaults when either is empty.
func NewClient(baseURL, server string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if server == "" {
		server = DefaultServer
	}
	return &Client{BaseURL: baseURL, Server: server}
}

// FetchByDateRange fetches one page of papers posted between start and end
// (ISO calendar dates). cursor is the zero-based page offset; the page size
// is fixed by the remote service.
func (c *Client) FetchByDateRange(start, end string, cursor int) ([]Paper, error) {
	endpoint := fmt.Sprintf("%s/details/%s/%s/%s/%d", c.BaseURL, c.Server, start, end, cursor)
	resp, err := c.fetch(endpoint)
	if err != nil {
		return nil, err
	}
	return resp.Collection, nil
}

// FetchByDOI looks up a single paper. It returns (nil, nil) when the API
// answers with an empty collection, so a bad DOI is an absent result rather
// than an error.
func (c *Client) FetchByDOI(doi string) (*Paper, error) {
	endpoint := fmt.Sprintf("%s/details/%s/%s/na/json", c.BaseURL, c.Server, doi)
	resp, err := c.fetch(endpoint)
	if err != nil {
		return nil, err
	}
	if len(resp.Collection) == 0 {
		return nil, nil
	}
	return &resp.Collection[0], nil
}

// FetchDetail looks up a paper and makes a best-effort attempt at its full
// text: first the JATS XML the record points at, then the content PDF.
// Full-text failures degrade to an empty FullText, never to an error.
func (c *Client) FetchDetail(doi string) (*PaperDetail, error) {
	paper, err := c.FetchByDOI(doi)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, nil
	}

	detail := &PaperDetail{Paper: *paper}
	if paper.JATSXML != "" {
		text, err := FetchJATSText(paper.JATSXML)
		if err != nil {
			log.Printf("Could not fetch JATS content for %s: %v", doi, err)
		} else {
			detail.FullText = text
		}
	}
	if detail.FullText == "" {
		text, err := ExtractPaperPDFText(paper.DOI)
		if err != nil {
			log.Printf("Could not extract PDF text for %s: %v", doi, err)
		} else {
			detail.FullText = text
		}
	}
	return detail, nil
}

// fetch performs one GET against a details endpoint and decodes the envelope.
func (c *Client) fetch(endpoint string) (*apiResponse, error) {
	res, err := httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error fetching %s: %s", endpoint, res.Status)
	}

	var resp apiResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return &resp, nil
}

// FetchJATSText downloads a JATS XML document and reduces it to plain
// paragraph text.
func FetchJATSText(url string) (string, error) {
	res, err := httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error fetching JATS document: %s", res.Status)
	}
	return JATSText(res.Body)
}

// JATSText extracts the paragraph text from a JATS XML document, one
// paragraph per blank-line-separated block.
func JATSText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse JATS document: %w", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(i int, p *goquery.Selection) {
		text := whitespaceRegex.ReplaceAllString(strings.TrimSpace(p.Text()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return "", fmt.Errorf("no paragraph text found in JATS document")
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// ExtractPaperPDFText fetches a paper's content PDF and extracts its plain
// text.
func ExtractPaperPDFText(doi string) (string, error) {
	url := fmt.Sprintf("%s/%sv1.full.pdf", contentBaseURL, doi)
	res, err := httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch pdf: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("failed to create pdf reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		// GetTextByRow yields chunks in order, so lines can be rebuilt with spaces.
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to get text by row on page %d: %w", i, err)
		}
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			textBuilder.WriteString(strings.Join(words, " "))
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), nil
}

package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const (
	maxLinksPerMessage = 2
	fetchTimeout       = 8 * time.Second
	maxContentChars    = 2500
)

// linkKeywords select URLs that likely carry document context worth
// appending to the analysis prompt.
var linkKeywords = []string{"policy", "download", "document", "statement", "terms"}

// Pre-compiled regexes to avoid runtime compilation on every message
var (
	urlRe        = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Scraper fetches external link content referenced by a message body
type Scraper struct {
	httpClient *http.Client
	converter  *md.Converter
}

// NewScraper creates a scraper with the fixed per-fetch timeout
func NewScraper() *Scraper {
	return &Scraper{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		converter: md.NewConverter("", true, nil),
	}
}

// ExtractRelevantLinks returns up to maxLinksPerMessage distinct URLs from
// the body whose address contains one of the document keywords.
func ExtractRelevantLinks(body string) []string {
	seen := make(map[string]bool)
	var links []string

	for _, url := range urlRe.FindAllString(body, -1) {
		lower := strings.ToLower(url)
		matched := false
		for _, kw := range linkKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched || seen[url] {
			continue
		}
		seen[url] = true
		links = append(links, url)
		if len(links) >= maxLinksPerMessage {
			break
		}
	}

	return links
}

// FetchLinkContext fetches the relevant links in a body and returns a
// labeled context block for the user prompt. Fetch failures are logged and
// skipped; they never abort the analysis.
func (s *Scraper) FetchLinkContext(ctx context.Context, body string) string {
	links := ExtractRelevantLinks(body)
	if len(links) == 0 {
		return ""
	}

	var sections []string
	for _, url := range links {
		content, err := s.fetchOne(ctx, url)
		if err != nil {
			log.Printf("[Scraper] Failed to fetch %s: %v", url, err)
			continue
		}
		if content == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("Source: %s\n%s", url, content))
	}

	if len(sections) == 0 {
		return ""
	}

	return "EXTERNAL RESOURCE CONTEXT:\n" + strings.Join(sections, "\n\n")
}

func (s *Scraper) fetchOne(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	text, err := s.converter.ConvertString(string(raw))
	if err != nil {
		// Not HTML; fall back to the raw body
		text = string(raw)
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text, nil
}

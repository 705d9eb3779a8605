// Package search fetches web snippets used to ground shaky completions.
package search

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Result is a single search hit. Only the snippet body is consumed downstream.
type Result struct {
	Body string
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// DuckDuckGo scrapes the HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	http *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{http: &http.Client{Timeout: 15 * time.Second}}
}

var (
	snippetRe = regexp.MustCompile(`(?s)<a[^>]+class="result__snippet"[^>]*>(.*?)</a>`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	u := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseSnippets(string(body)), nil
}

// ParseSnippets extracts result snippets from a DuckDuckGo HTML results page.
func ParseSnippets(page string) []Result {
	matches := snippetRe.FindAllStringSubmatch(page, 10)
	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		s := htmlTagRe.ReplaceAllString(m[1], "")
		s = html.UnescapeString(strings.TrimSpace(s))
		if s != "" {
			out = append(out, Result{Body: s})
		}
	}
	return out
}

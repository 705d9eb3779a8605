package search

import "testing"

const fixture = `
<div class="result">
  <a class="result__snippet" href="/l/?u=1">The <b>first</b> snippet</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__snippet" href="/l/?u=2">Second &amp; third words</a>
</div>
<div class="result">
  <a class="result__snippet" href="/l/?u=3">   </a>
</div>
`

func TestParseSnippets(t *testing.T) {
	got := ParseSnippets(fixture)
	if len(got) != 2 {
		t.Fatalf("expected 2 snippets, got %d: %v", len(got), got)
	}
	if got[0].Body != "The first snippet" {
		t.Fatalf("tags should be stripped, got %q", got[0].Body)
	}
	if got[1].Body != "Second & third words" {
		t.Fatalf("entities should be unescaped, got %q", got[1].Body)
	}
}

func TestParseSnippetsEmptyPage(t *testing.T) {
	if got := ParseSnippets("<html><body>no results</body></html>"); len(got) != 0 {
		t.Fatalf("expected no snippets, got %v", got)
	}
}

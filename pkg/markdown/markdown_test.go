package markdown

import (
	"strings"
	"testing"
)

func TestRenderStripsScripts(t *testing.T) {
	out := Render("**bold** <script>alert(1)</script>")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("script survived sanitizing: %q", out)
	}
}

func TestRenderLinks(t *testing.T) {
	out := Render("[site](https://example.com)")
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("link missing: %q", out)
	}
	if !strings.Contains(out, `target="_blank"`) {
		t.Fatalf("external link should open in new tab: %q", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if Render("") != "" {
		t.Fatal("empty input should render empty")
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out := string(RenderMarkdown("**kayıp** kedi"))
	if !strings.Contains(out, "<strong>kayıp</strong>") {
		t.Errorf("bold not rendered: %s", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hello <script>alert(1)</script> world"))
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %s", out)
	}
}

func TestRenderMarkdownKeepsImages(t *testing.T) {
	out := string(RenderMarkdown(`![pamuk](https://i.imgur.com/abc.jpg)`))
	if !strings.Contains(out, "<img") {
		t.Errorf("image dropped: %s", out)
	}
	if !strings.Contains(out, `loading="lazy"`) {
		t.Errorf("image missing lazy loading attribute: %s", out)
	}
}

func TestRenderMarkdownCachedIsStable(t *testing.T) {
	src := "a *cached* paragraph"
	first := RenderMarkdownCached(src)
	second := RenderMarkdownCached(src)
	if first != second {
		t.Errorf("cached render differs: %q vs %q", first, second)
	}
	if first != RenderMarkdown(src) {
		t.Errorf("cached render differs from direct render")
	}
}

func TestEnhanceHTMLContentYouTubeEmbed(t *testing.T) {
	out := string(EnhanceHTMLContent("<p>https://www.youtube.com/watch?v=dQw4w9WgXcQ</p>"))
	if !strings.Contains(out, "youtube.com/embed/dQw4w9WgXcQ") {
		t.Errorf("youtube link not embedded: %s", out)
	}
}

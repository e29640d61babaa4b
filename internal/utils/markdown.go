package utils

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Allow images (pet photos in posts)
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts user markdown to sanitized HTML.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // fallback
	}

	sanitized := policy.SanitizeBytes(buf.Bytes())

	return EnhanceHTMLContent(string(sanitized))
}

// RenderMarkdownCached renders through the global LRU, keyed by content
// hash so stale entries can never be served after an edit.
func RenderMarkdownCached(source string) template.HTML {
	sum := sha1.Sum([]byte(source))
	key := "md:" + hex.EncodeToString(sum[:])

	if cached := GetCache().Get(key); cached != nil {
		if rendered, ok := cached.(template.HTML); ok {
			return rendered
		}
	}

	rendered := RenderMarkdown(source)
	GetCache().Set(key, rendered, 30*time.Minute)
	return rendered
}

package markup

import (
	"regexp"
	"strings"
)

// Outbound bodies support a small inline-markdown subset only. The styled
// tags match what email clients render reliably without a stylesheet.
var (
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	linkRe   = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
	h3Re     = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Re     = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Re     = regexp.MustCompile(`(?m)^# (.*)$`)
)

// Inline converts a raw campaign body into the HTML fragment embedded in
// the outbound email: bold, italic, links, headings one to three, and
// newlines as explicit breaks. It knows nothing about the numbered-heading
// and list conventions handled by Preview.
func Inline(body string) string {
	s := boldRe.ReplaceAllString(body, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = linkRe.ReplaceAllString(s, `<a href="$2" style="color: #0066cc;">$1</a>`)
	s = h3Re.ReplaceAllString(s, "<h3 style='margin: 15px 0 10px; font-size: 18px;'>$1</h3>")
	s = h2Re.ReplaceAllString(s, "<h2 style='margin: 20px 0 10px; font-size: 22px;'>$1</h2>")
	s = h1Re.ReplaceAllString(s, "<h1 style='margin: 20px 0 10px; font-size: 26px;'>$1</h1>")
	return strings.ReplaceAll(s, "\n", "<br/>")
}

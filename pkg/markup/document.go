package markup

import "strings"

// Document wraps an Inline-formatted body in the standalone HTML document
// sent to the delivery provider. The optional image renders above the body.
// Styling is inlined because email clients ignore external stylesheets.
func Document(bodyHTML, imageURL string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`)
	if imageURL != "" {
		b.WriteString(`<img src="` + imageURL + `" alt="Email image" style="max-width: 100%; height: auto; margin-bottom: 20px; border-radius: 8px;" />`)
	}
	b.WriteString(`<div style="white-space: pre-wrap;">`)
	b.WriteString(bodyHTML)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

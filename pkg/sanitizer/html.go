// Package sanitizer guards the HTML surfaces that render
// operator-supplied content: the preview endpoint and anything else
// that echoes formatted template output back to a browser.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// previewPolicy mirrors the tag set the body formatters emit.
		previewPolicy = bluemonday.NewPolicy()
		previewPolicy.AllowStandardURLs()
		previewPolicy.AllowElements(
			"h1", "h2", "h3",
			"br",
			"strong", "em",
			"ul", "li",
		)
		previewPolicy.AllowAttrs("href").OnElements("a")
		previewPolicy.RequireNoFollowOnLinks(true)
	})
}

// SanitizePreview keeps only the elements the body formatters produce
// (headings, lists, emphasis, line breaks, plain links) and strips
// everything else, scripts and event handlers included.
func SanitizePreview(s string) string {
	initPolicies()
	return previewPolicy.Sanitize(s)
}

// Package markup converts the constrained markup dialect used by the
// campaign composer into HTML. It deliberately contains two separate
// transforms: Preview, which renders the composer's live preview
// (including the Bengali numbered-heading convention), and Inline, which
// produces the outbound email body. The two diverge in supported syntax
// and must not be unified; the history and preview surfaces each depend
// on their exact output shape.
package markup

import (
	"regexp"
	"strings"
)

var (
	// A run of Bengali digits terminated by a danda marks a heading line.
	headingLineRe = regexp.MustCompile(`^[০-৯]+।\s*(.+)$`)
	boldRe        = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Preview renders a raw campaign body for the composer preview pane.
//
// The transform is applied in fixed order: numbered-heading lines become
// <h3> elements, the block of plain lines directly under a heading becomes
// an unordered list (terminated by a blank line, another heading, or end
// of input), **text** becomes <strong>, remaining newlines become <br/>,
// and finally line breaks touching a heading tag are stripped.
//
// Preview must be applied exactly once to raw text; feeding its own
// output back in is undefined.
func Preview(body string) string {
	lines := strings.Split(body, "\n")

	var out []string
	for i := 0; i < len(lines); {
		m := headingLineRe.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			i++
			continue
		}

		out = append(out, "<h3>"+m[1]+"</h3>")
		i++

		var items []string
		for i < len(lines) {
			if strings.TrimSpace(lines[i]) == "" || headingLineRe.MatchString(lines[i]) {
				break
			}
			items = append(items, "<li>"+lines[i]+"</li>")
			i++
		}
		if len(items) > 0 {
			out = append(out, "<ul>"+strings.Join(items, "")+"</ul>")
		}
	}

	s := strings.Join(out, "\n")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = strings.ReplaceAll(s, "\n", "<br/>")

	// A heading renders with its own spacing; a neighboring <br/> would
	// show up as a visible blank line around it.
	s = strings.ReplaceAll(s, "</h3><br/>", "</h3>")
	s = strings.ReplaceAll(s, "<br/><h3>", "<h3>")

	return s
}

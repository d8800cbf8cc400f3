// Package template implements the {{variable}} placeholder syntax used in
// campaign subjects and bodies. It is intentionally not text/template: the
// composer exposes raw placeholders to operators and unresolved variables
// must survive substitution verbatim so a half-filled template is visible
// in the sent mail rather than silently blanked.
package template

import "regexp"

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Variables returns the distinct placeholder identifiers found in s,
// in order of first appearance. Order is informational only; callers
// use the result to list personalization variables in the UI.
func Variables(s string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Substitute replaces every {{name}} occurrence with values[name].
// Placeholders whose identifier is missing from values, or maps to an
// empty string, are left untouched, repeats included.
func Substitute(s string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok && v != "" {
			return v
		}
		return match
	})
}

package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heraldhq/herald/pkg/sanitizer"
)

func TestSanitizePreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps formatter output",
			input:    `<h3>Title</h3><ul><li>one</li></ul><br/><strong>bold</strong>`,
			expected: `<h3>Title</h3><ul><li>one</li></ul><br/><strong>bold</strong>`,
		},
		{
			name:     "strips script injection",
			input:    `<h3>Hi</h3><script>alert('xss')</script>`,
			expected: `<h3>Hi</h3>`,
		},
		{
			name:     "strips event handlers",
			input:    `<strong onclick="alert(1)">bold</strong>`,
			expected: `<strong>bold</strong>`,
		},
		{
			name:     "strips javascript links",
			input:    `<a href="javascript:alert(1)">click</a>`,
			expected: `click`,
		},
		{
			name:     "keeps plain https links",
			input:    `<a href="https://example.com">site</a>`,
			expected: `<a href="https://example.com" rel="nofollow">site</a>`,
		},
		{
			name:     "strips style attributes",
			input:    `<h3 style="background:url(javascript:alert(1))">x</h3>`,
			expected: `<h3>x</h3>`,
		},
		{
			name:     "strips iframes",
			input:    `<iframe src="https://evil.com"></iframe>rest`,
			expected: `rest`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, sanitizer.SanitizePreview(tt.input))
		})
	}
}

package review

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer derives plain text from possibly markup-laden input before it
// is sent to the review model. Thread-safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with a strict policy that strips all HTML.
// The review model accepts plain text only, so nothing structural survives.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// PlainText strips markup tags, decodes named character entities (&nbsp;
// &amp; &lt; &gt; &quot; and friends), collapses whitespace runs to single
// spaces and trims the ends. Tag-only input yields the empty string.
func (s *Sanitizer) PlainText(input string) string {
	stripped := s.policy.Sanitize(input)
	decoded := html.UnescapeString(stripped)

	// Fields splits on any run of Unicode whitespace, which covers the
	// non-breaking spaces produced by &nbsp; decoding.
	words := strings.FieldsFunc(decoded, unicode.IsSpace)
	return strings.Join(words, " ")
}

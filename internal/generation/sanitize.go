package generation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textSanitizer strips any markup from model output before it is stored in
// the document. Rendering escapes again, so entities are decoded here.
type textSanitizer struct {
	policy *bluemonday.Policy
}

func newTextSanitizer() *textSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *textSanitizer) Clean(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}

var quotePairs = [][2]string{{`"`, `"`}, {"'", "'"}, {"\u201c", "\u201d"}}

// CleanQuoted also drops one pair of wrapping quotes, which models tend to add
// around a rewritten sentence.
func (s *textSanitizer) CleanQuoted(input string) string {
	out := s.Clean(input)
	for _, q := range quotePairs {
		if len(out) >= len(q[0])+len(q[1]) && strings.HasPrefix(out, q[0]) && strings.HasSuffix(out, q[1]) {
			return strings.TrimSpace(out[len(q[0]) : len(out)-len(q[1])])
		}
	}
	return out
}

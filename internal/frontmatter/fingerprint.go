package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint returns the content fingerprint of a Markdown document,
// computed over its front matter and body. Documents whose front matter is
// malformed are fingerprinted as a whole.
func Fingerprint(content []byte) string {
	fm, body, had, err := Split(content)
	if err != nil || !had {
		return mdfp.CalculateFingerprintFromParts("", string(content))
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), string(body))
}

package coverletter

import "strings"

// FallbackParagraph replaces an empty body so the letter always has content.
const FallbackParagraph = "No content generated or provided for the cover letter body."

const paragraphDelimiter = "\n\n"

// SplitParagraphs splits body on blank lines, trims each segment and drops
// empty ones. The result always has at least one element.
func SplitParagraphs(body string) []string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.TrimSpace(normalized)

	var out []string
	for _, segment := range strings.Split(normalized, paragraphDelimiter) {
		if p := strings.TrimSpace(segment); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{FallbackParagraph}
	}
	return out
}

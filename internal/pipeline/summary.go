package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSummaryLength is the target summary size in runes.
	DefaultSummaryLength = 200

	// boundaryTolerance is how far back from the target length a sentence
	// boundary may sit and still be preferred over a hard cut.
	boundaryTolerance = 60
)

var (
	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`[^`]*`")
	mdImage     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
	headingMark = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis    = regexp.MustCompile(`[*_~]{1,3}`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// sentenceEnders terminate a sentence when followed by a space or the end
// of the text.
var sentenceEnders = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// ExtractSummary returns a stage that derives a plain-text summary from the
// working markdown body, truncated to at most maxLen runes. The cut prefers
// a sentence boundary within the tolerance window; if none exists the text
// is hard-truncated with an ellipsis.
func ExtractSummary(maxLen int) StageFunc {
	return func(res Result) (Result, error) {
		res.Summary = summarize(res.Body, maxLen)
		return res, nil
	}
}

// summarize strips markdown syntax and truncates the remaining text.
func summarize(body string, maxLen int) string {
	text := fencedCode.ReplaceAllString(body, " ")
	text = inlineCode.ReplaceAllString(text, " ")
	text = mdImage.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	text = htmlTag.ReplaceAllString(text, " ")
	text = headingMark.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	window := string(runes[:maxLen])
	if cut := lastSentenceEnd(window); cut >= 0 {
		if kept := utf8.RuneCountInString(window[:cut]); kept >= maxLen-boundaryTolerance {
			return strings.TrimSpace(window[:cut])
		}
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "…"
}

// lastSentenceEnd returns the byte offset just past the last sentence
// terminator in s, or -1 if there is none.
func lastSentenceEnd(s string) int {
	best := -1
	for _, end := range sentenceEnders {
		if i := strings.LastIndex(s, end); i >= 0 && i+1 > best {
			best = i + 1
		}
	}
	// A sentence may end exactly at the window edge without trailing space.
	for _, p := range []string{".", "!", "?"} {
		if strings.HasSuffix(s, p) {
			best = len(s)
		}
	}
	return best
}

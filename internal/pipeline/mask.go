package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaskedTerms is the fixed vocabulary substituted in comment bodies
// before rendering. The list is configured at startup, not editable by end
// users.
var DefaultMaskedTerms = []string{
	"spam",
	"viagra",
	"casino",
}

// MaskTerms returns a stage that replaces every occurrence of the
// vocabulary terms with asterisks of equal length. Matching is
// case-insensitive and bounded to whole words. An empty vocabulary yields
// a pass-through stage.
func MaskTerms(vocabulary []string) StageFunc {
	re := compileVocabulary(vocabulary)
	return func(res Result) (Result, error) {
		if re == nil {
			return res, nil
		}
		res.Body = re.ReplaceAllStringFunc(res.Body, func(m string) string {
			return strings.Repeat("*", utf8.RuneCountInString(m))
		})
		return res, nil
	}
}

// compileVocabulary builds one alternation regexp over the quoted terms.
// Returns nil when there is nothing to mask.
func compileVocabulary(vocabulary []string) *regexp.Regexp {
	var quoted []string
	for _, term := range vocabulary {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

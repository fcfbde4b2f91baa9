package splitter

import "strings"

// SplitSentences breaks text into sentences at terminal punctuation or
// newlines. This is a heuristic boundary detector: abbreviations, decimal
// numbers, and punctuation inside quotes are not special-cased, and a run
// without terminal punctuation comes back as one sentence however long.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

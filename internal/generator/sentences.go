package generator

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// splitSentences cuts text at runs of '.', '!' and '?'. Each sentence keeps
// its terminating run; fragments with no words are dropped.
func splitSentences(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		body := text[prev:loc[0]]
		if strings.TrimSpace(body) != "" {
			sentences = append(sentences, strings.TrimSpace(text[prev:loc[1]]))
		}
		prev = loc[1]
	}
	if tail := strings.TrimSpace(text[prev:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// phrase joins words and drops trailing sentence punctuation so a "?" can be
// appended cleanly.
func phrase(words []string) string {
	return strings.TrimRight(strings.Join(words, " "), ".!?")
}

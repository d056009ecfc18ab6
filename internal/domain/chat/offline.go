package chat

import (
	"regexp"
	"sort"
	"strings"
)

// Offline answering, used when no LLM is configured or the LLM call failed.
// This is deliberately naive keyword matching over the indexed document
// texts, not semantic search.

var wordSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

// ContextAnswer picks up to five sentences from the indexed material text
// that share the most keywords with the query. Returns "" when the context
// yields nothing.
func ContextAnswer(query, context string) string {
	words := queryWords(query)
	sentences := splitSentences(context)
	if len(sentences) == 0 {
		return ""
	}

	type scored struct {
		sentence string
		score    int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				score++
			}
		}
		ranked = append(ranked, scored{sentence: s, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var picks []string
	for _, r := range ranked {
		if ranked[0].score > 0 && r.score == 0 {
			break
		}
		picks = append(picks, strings.TrimSpace(r.sentence))
		if len(picks) == 5 {
			break
		}
	}
	if len(picks) == 0 {
		return ""
	}
	return "Based on your materials, here are relevant excerpts:\n\n - " + strings.Join(picks, "\n - ")
}

func queryWords(query string) []string {
	var words []string
	for _, w := range wordSplitRe.Split(strings.ToLower(query), -1) {
		if len(w) >= 3 {
			words = append(words, w)
		}
	}
	return words
}

// splitSentences breaks text on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && isSpace(runes[i+1]) {
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

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

var (
	photosynthesisTopicRe = regexp.MustCompile(`(?i)photosynthesis`)
	recursionTopicRe      = regexp.MustCompile(`(?i)recursion`)
	bigOTopicRe           = regexp.MustCompile(`(?i)big\s*o`)
)

// HelpfulReply produces a canned reply for a handful of common study topics
// when there is no material context to draw from.
func HelpfulReply(query string) string {
	q := strings.TrimSpace(query)
	switch {
	case q == "":
		return "Please ask a question or upload materials so I can help."
	case photosynthesisTopicRe.MatchString(q):
		return "Photosynthesis converts light energy to chemical energy in plants, producing glucose and oxygen."
	case recursionTopicRe.MatchString(q):
		return "Recursion is defining a function in terms of itself, with a base case to stop."
	case bigOTopicRe.MatchString(q):
		return "Big O describes time/space growth with input size; common orders: O(1), O(log n), O(n), O(n log n), O(n^2)."
	default:
		return "I can help. Please upload materials or ask a more specific question for a concise explanation."
	}
}

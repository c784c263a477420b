// Package text provides text measurement and shaping helpers shared by
// article rendering, source previews and SEO metadata.
package text

import "strings"

// CountRunes counts Unicode characters (runes) in the given text.
// Counting runes instead of bytes keeps lengths correct for Japanese,
// Chinese, emoji and other multi-byte content.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("hello世界")  // returns 7 (mixed text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts whitespace-delimited words. Scripts without word
// spacing undercount here; reading-time figures for such content are
// approximate.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CollapseWhitespace replaces every whitespace run with a single space
// and trims the ends. Extracted article text keeps source formatting
// (newlines, indentation) that rendered summaries should not.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt shapes text into a summary of at most maxRunes runes:
// whitespace is collapsed, the cut lands on a word boundary where one
// exists, and a trailing ellipsis marks truncation.
func Excerpt(text string, maxRunes int) string {
	collapsed := CollapseWhitespace(text)
	if maxRunes <= 0 {
		return ""
	}

	runes := []rune(collapsed)
	if len(runes) <= maxRunes {
		return collapsed
	}

	cut := runes[:maxRunes]
	if idx := lastSpace(cut); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(string(cut), " ") + "…"
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

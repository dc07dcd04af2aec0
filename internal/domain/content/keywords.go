package content

import (
	"strings"
	"unicode"
)

const (
	minKeywordLen = 4
	maxKeywords   = 8
)

var stopWords = map[string]struct{}{
	"with": {}, "from": {}, "this": {}, "that": {}, "your": {}, "have": {}, "will": {},
	"they": {}, "them": {}, "their": {}, "there": {}, "were": {}, "been": {}, "into": {},
	"only": {}, "also": {}, "more": {}, "most": {}, "very": {}, "just": {}, "each": {},
	"what": {}, "when": {}, "which": {}, "made": {}, "best": {}, "great": {}, "item": {},
}

// Keywords tokenizes item titles and descriptions on whitespace and
// punctuation, drops short and filler words and keeps first-seen order.
// Titles are scanned before descriptions.
func Keywords(items []Item) []string {
	if len(items) > MaxItemsPerShop {
		items = items[:MaxItemsPerShop]
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, maxKeywords)
	add := func(text string) {
		for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			if len(out) >= maxKeywords {
				return
			}
			tok = strings.ToLower(tok)
			if len([]rune(tok)) < minKeywordLen {
				continue
			}
			if _, stop := stopWords[tok]; stop {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	for _, it := range items {
		add(it.Title)
	}
	for _, it := range items {
		add(it.Description)
	}
	return out
}

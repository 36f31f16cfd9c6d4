package extract

import "strings"

// EstimateTokens approximates the prompt size of text at about 1.33 tokens
// per word. Non-empty text is never less than one token.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		if text == "" {
			return 0
		}
		return 1
	}
	return int(float64(words) * 1.33)
}

package app

import "strings"

// TokenCostEstimator estimates how many model tokens a string costs.
type TokenCostEstimator interface {
	Estimate(s string) int
}

// CharEstimator approximates tokens as ceil(bytes / CharsPerToken).
// Chunk boundaries therefore differ from a BPE tokenizer's.
type CharEstimator struct {
	CharsPerToken int
}

func NewCharEstimator(charsPerToken int) CharEstimator {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	return CharEstimator{CharsPerToken: charsPerToken}
}

func (e CharEstimator) Estimate(s string) int {
	n := e.CharsPerToken
	if n <= 0 {
		n = 4
	}
	return (len(s) + n - 1) / n
}

// Chunk splits text on whitespace and greedily packs words into chunks whose
// estimated cost stays within maxTokens. Each word is costed as word+" ".
// A word costing more than the budget on its own gets a chunk to itself.
func Chunk(text string, maxTokens int, est TokenCostEstimator) []string {
	var (
		chunks  []string
		current []string
		used    int
	)
	for _, w := range strings.Fields(text) {
		cost := est.Estimate(w + " ")
		if used+cost > maxTokens && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, used = nil, 0
		}
		current = append(current, w)
		used += cost
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

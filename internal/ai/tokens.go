package ai

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the encoding for model. The first call may download the BPE ranks.
func NewTiktokenCounter(model string) (TokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tokenizer for %s: %w", model, err)
	}
	return &tiktokenCounter{enc: enc}, nil
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

func historyTokens(counter TokenCounter, h History) int {
	total := 0
	for _, m := range h {
		total += counter.Count(m.Content)
	}
	return total
}

package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// NumTokens counts tokens in text with the gpt-4 encoding, close enough
// for logging and chunk budgeting across providers.
func NumTokens(text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}

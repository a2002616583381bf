// Package inference abstracts the chat-completion providers the generation
// pipeline can run on. Providers share the OpenAI request parameter shape
// even when the backing API differs.
package inference

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
)

// Inferencer runs one prompt against a model and sanity-checks its output.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
	Verify(ctx context.Context, result string) (bool, error)
}

// New builds an inferencer for the named provider. An empty model picks
// the provider's default.
func New(provider, apiKey, model string) (Inferencer, error) {
	switch provider {
	case "openai", "":
		return NewOpenAI(apiKey, model), nil
	case "gemini":
		return NewGemini(apiKey, model)
	case "grok":
		return NewGrok(apiKey, model), nil
	}
	return nil, fmt.Errorf("unknown inference provider %q", provider)
}

func messages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Role: "user",
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: param.Opt[string]{Value: user},
				},
			},
		},
	}
}

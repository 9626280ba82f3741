// FILE: pkg/rag/response/generator.go
// PURPOSE: Wrap the LLM provider and translate its failures for routing

package response

import (
	"context"
	"errors"
	"log"

	"payment-support-be/pkg/llm"
)

// Generation failures are recoverable: the routing layer answers with a
// fallback instead of surfacing the error to the user.
var (
	ErrUnavailable = errors.New("generation backend unavailable")
	ErrTimeout     = errors.New("generation timed out")
)

// Generator creates responses through a provider-agnostic LLM backend
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
	opts        []llm.Option
}

// NewGenerator creates a new response generator
func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger, opts ...llm.Option) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
		opts:        opts,
	}
}

// Generate sends the assembled messages to the model. Provider errors are
// collapsed into ErrTimeout or ErrUnavailable so callers can degrade
// without inspecting transport details.
func (g *Generator) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	response, err := g.llmProvider.Chat(ctx, messages, g.opts...)
	if err != nil {
		if g.logger != nil {
			g.logger.Printf("[ERROR] LLM generation failed: %v", err)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrUnavailable
	}
	return response, nil
}

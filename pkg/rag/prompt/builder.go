// FILE: pkg/rag/prompt/builder.go
// PURPOSE: Build the message sequences for each routing path

package prompt

import (
	"strings"

	"payment-support-be/pkg/llm"
)

// Builder assembles provider messages for the generation call. Each
// routing path gets its own system prompt; history is always prepended
// between the system prompt and the new question.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildRagMessages produces the grounded sequence: system prompt with the
// formatted context block, then history, then the user's question.
func (b *Builder) BuildRagMessages(contextBlock string, history []llm.Message, question string) []llm.Message {
	var sys strings.Builder
	sys.WriteString("You are a payment support assistant.\n")
	sys.WriteString("Answer the customer's question using ONLY the reference material below.\n")
	sys.WriteString("If the material says no relevant information was found, say you could not find the answer and suggest contacting support.\n")
	sys.WriteString("Be concise and accurate. Do not invent account details, limits, or fees.\n\n")
	sys.WriteString("<reference_material>\n")
	sys.WriteString(contextBlock)
	sys.WriteString("\n</reference_material>")

	return b.assemble(sys.String(), history, question)
}

// BuildDirectMessages produces the ungrounded sequence for questions that
// need no knowledge-base lookup.
func (b *Builder) BuildDirectMessages(history []llm.Message, question string) []llm.Message {
	sys := "You are a payment support assistant.\n" +
		"Answer the customer's question helpfully and briefly.\n" +
		"If the question is about their account, transactions, or card and you lack the data, say so and suggest rephrasing with more detail."

	return b.assemble(sys, history, question)
}

// BuildGreetingMessages produces the sequence for small talk. The model
// is steered toward a short, warm reply that invites a real question.
func (b *Builder) BuildGreetingMessages(history []llm.Message, question string) []llm.Message {
	sys := "You are a payment support assistant.\n" +
		"The customer is greeting you or making small talk. Reply warmly in one or two sentences and invite them to ask about their account, cards, or payments."

	return b.assemble(sys, history, question)
}

func (b *Builder) assemble(system string, history []llm.Message, question string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}

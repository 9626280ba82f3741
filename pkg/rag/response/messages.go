// FILE: pkg/rag/response/messages.go
// PURPOSE: Canned replies for paths that never reach the model

package response

// FallbackMessage is the apology sent when generation fails after routing
// already committed to answering.
const FallbackMessage = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

// ClarifyMessage answers utterances classified as unclear. No model call
// is made for these.
const ClarifyMessage = "I'm not sure I understand your question. Could you please rephrase it or provide more details?"

// GreetingFallback covers greetings when the model cannot be reached.
const GreetingFallback = "Hello! How can I help you today?"

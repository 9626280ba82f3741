package store

// Role values for conversation turns. The LLM layer understands the same
// strings, so no mapping is needed between history and prompts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Document is one retrieved knowledge-base passage. Produced fresh each
// routing cycle by the retriever, ordered by descending score, and read-only
// for everything downstream.
type Document struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Text     string                 `json:"text"`
	Score    float64                `json:"score"` // cosine similarity, 0.0-1.0
	Metadata map[string]interface{} `json:"metadata"`
}

// Turn is one role-tagged message in a conversation. Turns are created once
// per cycle (one user, one assistant) and never mutated afterwards.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"payment-support-be/internal/config"
	"payment-support-be/internal/repository/implementation"
	"payment-support-be/pkg/database"
	"payment-support-be/pkg/embedding"
	"payment-support-be/pkg/llm/factory"
	"payment-support-be/pkg/rag/classifier"
	"payment-support-be/pkg/rag/executor"
	"payment-support-be/pkg/rag/history"
	"payment-support-be/pkg/rag/response"
	"payment-support-be/pkg/rag/search"
	"payment-support-be/pkg/rag/state"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Interactive terminal client that drives the routing pipeline directly,
// without the HTTP layer. Useful for tuning the classifier vocabulary
// and inspecting retrieval behavior.
func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM Provider: %v", err)
	}

	ragLogger := log.New(os.Stderr, "[RAG] ", log.LstdFlags)

	searchConfig := search.DefaultConfig()
	if cfg.Ai.RagTopK > 0 {
		searchConfig.TopK = cfg.Ai.RagTopK
	}
	if cfg.Ai.RagSimilarityFloor > 0 {
		searchConfig.SimilarityFloor = cfg.Ai.RagSimilarityFloor
	}
	retriever := search.NewOrchestrator(
		embeddingProvider,
		implementation.NewSupportEntryRepository(db),
		implementation.NewSupportEmbeddingRepository(db),
		searchConfig,
		ragLogger,
	)

	pipeline := executor.NewPipelineExecutor(
		classifier.New(ragLogger),
		retriever,
		response.NewGenerator(llmProvider, ragLogger),
		ragLogger,
	)

	conv := state.NewConversation(uuid.New(), uuid.New(), history.DefaultMaxExchanges)

	color.Cyan("💬 Payment Support Chat (provider: %s/%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	color.White("Type a question, or /reset, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			return
		case "/reset":
			conv.Lock()
			conv.Reset()
			conv.Unlock()
			color.Yellow("Conversation reset")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		result, err := pipeline.Execute(ctx, conv, input)
		cancel()

		if err != nil {
			color.Red("Error: %v", err)
			continue
		}

		color.Yellow("[%s, confidence %.2f, %v]", result.Label, result.Confidence, result.Elapsed.Round(time.Millisecond))
		if result.Degraded {
			color.Red("(degraded: %s failed)", strings.Join(result.FailedStages, ", "))
		}
		for _, doc := range result.Documents {
			color.White("  source: %s (%.2f)", doc.Title, doc.Score)
		}
		color.Green("%s", result.Reply)
	}
}

package bootstrap

import (
	"context"
	"log"
	"os"

	"payment-support-be/internal/config"
	"payment-support-be/internal/controller"
	"payment-support-be/internal/handler"
	"payment-support-be/internal/pkg/logger"
	"payment-support-be/internal/repository/implementation"
	"payment-support-be/internal/repository/memory"
	"payment-support-be/internal/repository/unitofwork"
	"payment-support-be/internal/service"
	"payment-support-be/internal/websocket"
	"payment-support-be/pkg/embedding"
	"payment-support-be/pkg/llm/factory"
	"payment-support-be/pkg/rag/search"

	pkgNats "payment-support-be/pkg/nats"
	supportEvents "payment-support-be/pkg/support/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController          controller.IChatController
	KnowledgeBaseController controller.IKnowledgeBaseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Events
	ChatEventHandler *handler.ChatEventHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory session storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	eventPublisher := supportEvents.NewNatsPublisher(natsPub, sysLogger)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Retrieval
	searchLogger := log.New(os.Stdout, "[RAG-SEARCH] ", log.LstdFlags)
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
		searchLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopicName,
		uowFactory,
		embeddingProvider,
	)

	chatService := service.NewChatService(
		uowFactory,
		retriever,
		llmProvider,
		sessionRepo,
		eventPublisher,
	)
	kbService := service.NewKnowledgeBaseService(
		uowFactory,
		publisherService,
		eventPublisher,
	)

	// 7. Event bridge
	chatEventHandler := handler.NewChatEventHandler(natsSub, wsHub, wsLogger)
	if err := chatEventHandler.StartEventBridge(); err != nil {
		log.Printf("[WARN] Failed to start chat event bridge: %v", err)
	}

	return &Container{
		ChatController:          controller.NewChatController(chatService),
		KnowledgeBaseController: controller.NewKnowledgeBaseController(kbService),

		ConsumerService: consumerService,

		ChatEventHandler: chatEventHandler,
		WebSocketHub:     wsHub,
	}
}

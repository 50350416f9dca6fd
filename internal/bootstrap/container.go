package bootstrap

import (
	"log"
	"os"

	"ai-pipeline-be/internal/config"
	"ai-pipeline-be/internal/controller"
	"ai-pipeline-be/internal/pkg/logger"
	"ai-pipeline-be/internal/repository/memory"
	"ai-pipeline-be/internal/repository/unitofwork"
	"ai-pipeline-be/internal/service"
	"ai-pipeline-be/pkg/embedding"
	"ai-pipeline-be/pkg/llm/factory"
	"ai-pipeline-be/pkg/pipeline"
	"ai-pipeline-be/pkg/rag/search"
	"ai-pipeline-be/pkg/weather"

	pktNats "ai-pipeline-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// System logger, exposed so main can Sync on shutdown
	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		sysLogger.Info("bootstrap", "Using embedding provider: ollama", map[string]interface{}{"model": cfg.Ai.OllamaModel})
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		sysLogger.Info("bootstrap", "Using embedding provider: gemini", nil)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("bootstrap", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Pipeline Collaborators
	weatherClient := weather.NewClient(cfg.Keys.OpenWeatherMap)
	retriever := search.NewVectorRetriever(uowFactory, embeddingProvider, pipelineLogger)

	orchestrator := pipeline.NewOrchestrator(
		llmProvider,
		retriever,
		weatherClient,
		pipeline.Config{
			DefaultCity: cfg.Weather.DefaultCity,
			TopK:        cfg.Pipeline.TopK,
		},
		pipelineLogger,
	)

	// 5. Infrastructure
	sessionRepo := memory.NewSessionRepository()

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService)
	chatService := service.NewChatService(uowFactory, orchestrator, sessionRepo, natsPub, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}

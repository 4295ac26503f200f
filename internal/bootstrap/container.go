package bootstrap

import (
	"context"
	"log"

	"swift-assist-be/internal/config"
	"swift-assist-be/internal/controller"
	"swift-assist-be/internal/handler"
	"swift-assist-be/internal/pkg/logger"
	"swift-assist-be/internal/pkg/mailer"
	"swift-assist-be/internal/repository/implementation"
	"swift-assist-be/internal/repository/memory"
	"swift-assist-be/internal/service"
	"swift-assist-be/internal/websocket"
	"swift-assist-be/pkg/llm/factory"
	"swift-assist-be/pkg/nlu/sentiment"

	pktNats "swift-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Topic for in-process chat turn events bridged to the WebSocket hub.
const chatTurnTopic = "CHAT_TURN_EVENTS"

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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
	wsLogger := logger.NewIsolatedLogger("logs/chat_stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. NLU core
	sentimentCfg := sentiment.DefaultConfig()
	sentimentCfg.EscalateAnger = cfg.Sentiment.EscalateAnger
	sentimentCfg.EscalateFrustration = cfg.Sentiment.EscalateFrustration
	analyzer := sentiment.New(sentimentCfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.HuggingFaceKey,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories & services
	chatRepo := implementation.NewChatRepository(db)
	sessionRepo := memory.NewSessionRepository()
	profileService := service.NewProfileService(chatRepo)

	var eventBus service.EventPublisher
	if natsPub != nil {
		eventBus = natsPub
	}

	chatService := service.NewChatService(
		chatRepo,
		sessionRepo,
		profileService,
		analyzer,
		llmProvider,
		pubSub,
		chatTurnTopic,
		eventBus,
		emailService,
		cfg.SMTP.SupportEmail,
		sysLogger,
	)

	consumerService := service.NewConsumerService(pubSub, chatTurnTopic, wsHub)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		ConsumerService:   consumerService,
		ChatStreamHandler: handler.NewChatStreamHandler(wsHub, wsLogger),
		WebSocketHub:      wsHub,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "huggingface" {
		return cfg.Ai.HuggingFaceURL
	}
	return cfg.Ai.OllamaBaseURL
}

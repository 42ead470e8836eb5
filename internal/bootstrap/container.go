package bootstrap

import (
	"context"
	"time"

	"ai-search-be/internal/config"
	"ai-search-be/internal/controller"
	"ai-search-be/internal/pkg/logger"
	"ai-search-be/internal/repository/memory"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/internal/service"
	"ai-search-be/pkg/answer/executor"
	"ai-search-be/pkg/answer/filter"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/tuning"
	"ai-search-be/pkg/events"
	"ai-search-be/pkg/llm"
	"ai-search-be/pkg/llm/factory"
	"ai-search-be/pkg/llm/registry"
	pktNats "ai-search-be/pkg/nats"
	"ai-search-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController         controller.IChatController
	ConversationController controller.IConversationController
	SettingsController     controller.ISettingsController
	ModelController        controller.IModelController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AuditSubscriber *pktNats.Subscriber

	Logger logger.ILogger

	closers []func()
}

// Close releases broker connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// NewAnswerExecutor assembles the answer pipeline over the given provider.
func NewAnswerExecutor(cfg *config.Config, provider llm.Provider, reg *registry.Registry, log logger.ILogger) (*executor.Executor, error) {
	tables, catalog, err := tuning.LoadDefaults(cfg.Ai.PipelineTuningPath)
	if err != nil {
		return nil, err
	}

	scorer := relevance.NewScorer(tables, log)
	return executor.New(provider, reg, catalog, filter.New(scorer, catalog), log,
		executor.WithTimeout(time.Duration(cfg.Ai.RequestTimeoutSeconds)*time.Second),
	), nil
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sessionRepo := memory.NewSessionRepository()
	container := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	container.closers = append(container.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS publisher unavailable, domain events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		container.closers = append(container.closers, natsPub.Close)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		container.AuditSubscriber = natsSub
		container.closers = append(container.closers, natsSub.Close)
	}

	var quotaCounter ratelimit.Counter
	if cfg.App.ChatDailyLimit > 0 {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Redis unreachable, chat quota disabled", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
		} else {
			quotaCounter = ratelimit.NewRedisCounter(rdb)
			container.closers = append(container.closers, func() { _ = rdb.Close() })
		}
	}
	limiter := ratelimit.New(quotaCounter, cfg.App.ChatDailyLimit, sysLogger)

	// 4. Answer pipeline
	models := registry.Default()
	if m, ok := models.Lookup(cfg.Ai.DefaultModel); ok {
		models = registry.New(models.All(), m.ID)
	}

	router := factory.NewRouterFromConfig(models, factory.Config{
		PerplexityAPIKey:  cfg.Ai.PerplexityAPIKey,
		PerplexityBaseURL: cfg.Ai.PerplexityBaseURL,
		OpenAIAPIKey:      cfg.Ai.OpenAIAPIKey,
		OpenAIBaseURL:     cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL:     cfg.Ai.OllamaBaseURL,
		Timeout:           time.Duration(cfg.Ai.RequestTimeoutSeconds) * time.Second,
	})
	for _, name := range []string{registry.ProviderPerplexity, registry.ProviderOpenAI, registry.ProviderOllama} {
		sysLogger.Info("BOOTSTRAP", "LLM provider", map[string]interface{}{"provider": name, "available": router.Available(name)})
	}

	answerExecutor, err := NewAnswerExecutor(cfg, router, models, sysLogger)
	if err != nil {
		container.Close()
		return nil, err
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	container.ConsumerService = service.NewConsumerService(pubSub, cfg.App.ActivityTopic, uowFactory, sysLogger)

	chatService := service.NewChatService(uowFactory, answerExecutor, sessionRepo, limiter, eventPublisher, publisherService, sysLogger)
	conversationService := service.NewConversationService(uowFactory, sessionRepo, eventPublisher, sysLogger)
	settingsService := service.NewSettingsService(uowFactory, models)

	// 6. Controllers
	container.ChatController = controller.NewChatController(chatService)
	container.ConversationController = controller.NewConversationController(conversationService)
	container.SettingsController = controller.NewSettingsController(settingsService)
	container.ModelController = controller.NewModelController(models)

	return container, nil
}

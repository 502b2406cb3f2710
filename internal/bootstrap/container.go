package bootstrap

import (
	"context"
	"log"
	"strings"

	"mathclicks-be/internal/config"
	"mathclicks-be/internal/controller"
	"mathclicks-be/internal/handler"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/internal/pkg/mailer"
	"mathclicks-be/internal/repository/contract"
	"mathclicks-be/internal/repository/implementation"
	"mathclicks-be/internal/repository/memory"
	"mathclicks-be/internal/repository/unitofwork"
	"mathclicks-be/internal/service"
	"mathclicks-be/internal/websocket"
	"mathclicks-be/pkg/events"
	"mathclicks-be/pkg/llm"
	"mathclicks-be/pkg/llm/factory"
	"mathclicks-be/pkg/upstream"
	"mathclicks-be/pkg/vision"

	pktNats "mathclicks-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PracticeController controller.IPracticeController
	SessionController  controller.ISessionController
	SharingController  controller.ISharingController
	ClassController    controller.IClassController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	SharingService  service.ISharingService

	// WebSockets
	MonitorHandler *handler.MonitorHandler
	WebSocketHub   *websocket.Hub
}

// NewContainer wires the whole application. db may be nil: sessions then live
// in the in-process store and class features (which need Postgres) stay off.
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

	upstreamClient := upstream.NewClient(cfg.App.BackendURL)
	if upstreamClient.Configured() {
		log.Printf("[INFO] Proxy mode: relaying AI and class routes to %s", cfg.App.BackendURL)
	} else if cfg.App.EmbeddedBackend {
		log.Printf("[INFO] Embedded mode: serving AI and class routes locally")
	} else {
		log.Printf("[INFO] No backend configured: AI and class routes answer 501")
	}

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
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/monitor.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Classroom events published to JetStream come back through a durable
	// consumer and land on every instance's monitor sockets.
	if natsSub != nil {
		err := natsSub.Subscribe("classroom.>", "monitor-fanout", func(_ context.Context, event events.Event) error {
			payload := event.Payload()
			classCode, _ := payload["class_code"].(string)
			if classCode == "" {
				return nil
			}
			wsHub.BroadcastToClass(classCode, map[string]interface{}{
				"type":    strings.TrimPrefix(event.EventType(), "classroom."),
				"payload": payload,
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to classroom events: %v", err)
		}
	}

	// 3. Storage
	var sessionStore contract.SessionStore
	if db != nil {
		sessionStore = implementation.NewSessionStore(db)
		log.Printf("[INFO] Using Postgres session store")
	} else {
		sessionStore = memory.NewSessionStore()
		log.Printf("[INFO] Using in-memory session store")
	}

	// 4. AI Providers (embedded mode only)
	var llmProvider llm.Provider
	var visionProvider vision.Provider
	if cfg.App.EmbeddedBackend {
		llmProvider, err = factory.NewProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Keys.GoogleGemini,
		)
		if err != nil {
			log.Printf("[WARN] LLM provider unavailable, generation falls back to local drills: %v", err)
		} else {
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}

		if cfg.Keys.GoogleGemini != "" {
			visionProvider = vision.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.VisionModel)
			log.Printf("[INFO] Using Vision Provider: GEMINI (%s)", cfg.Ai.VisionModel)
		} else {
			log.Printf("[WARN] GOOGLE_GEMINI_API_KEY not set, image extraction disabled")
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.ProgressTopic, sysLogger)
	sessionService := service.NewSessionService(sessionStore, sysLogger)
	practiceService := service.NewPracticeService(sessionService, llmProvider, publisherService, sysLogger)
	extractionService := service.NewExtractionService(visionProvider, practiceService, sessionService, sysLogger)
	analysisService := service.NewAnalysisService(llmProvider, sysLogger)

	// Class features need Postgres for the roster and achievements.
	var classService service.IClassService
	embeddedClasses := cfg.App.EmbeddedBackend && db != nil
	if db != nil {
		uowFactory := unitofwork.NewRepositoryFactory(db)
		classService = service.NewClassService(uowFactory, emailService, natsPub, wsHub, cfg.Keys.JwtSecret, sysLogger)
	} else if cfg.App.EmbeddedBackend {
		log.Printf("[WARN] Embedded class routes disabled: no database configured")
	}

	sharingService := service.NewSharingService(sessionService, classService, upstreamClient, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ProgressTopic,
		sessionService,
		sharingService,
		classService,
		upstreamClient,
		sysLogger,
	)

	// 6. Handlers & Controllers
	monitorHandler := handler.NewMonitorHandler(wsHub, wsLogger)

	return &Container{
		PracticeController: controller.NewPracticeController(extractionService, practiceService, analysisService, upstreamClient, cfg.App.EmbeddedBackend),
		SessionController:  controller.NewSessionController(sessionService),
		SharingController:  controller.NewSharingController(sharingService),
		ClassController:    controller.NewClassController(classService, upstreamClient, embeddedClasses),

		ConsumerService: consumerService,
		SharingService:  sharingService,

		MonitorHandler: monitorHandler,
		WebSocketHub:   wsHub,
	}
}

package bootstrap

import (
	"log"
	"time"

	"askn7-backend/internal/config"
	"askn7-backend/internal/controller"
	"askn7-backend/internal/pkg/logger"
	"askn7-backend/internal/repository/unitofwork"
	"askn7-backend/internal/service"
	"askn7-backend/pkg/answer/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Answer Provider
	answerProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.DefaultModel,
		cfg.Ai.OllamaBaseURL,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize answer provider: %v", err)
	}
	log.Printf("[INFO] Using answer provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.DefaultModel)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ChatEventTopic, pubSub)

	activityLogger := logger.NewIsolatedLogger("logs/chat_activity.log")
	consumerService := service.NewConsumerService(pubSub, cfg.App.ChatEventTopic, activityLogger)

	chatService := service.NewChatService(
		uowFactory,
		answerProvider,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
	}
}

package bootstrap

import (
	"log"

	"building-book-be/internal/config"
	"building-book-be/internal/controller"
	"building-book-be/internal/pkg/logger"
	"building-book-be/internal/repository/memory"
	"building-book-be/internal/repository/unitofwork"
	"building-book-be/internal/service"
	pktNats "building-book-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WizardController controller.IWizardController
	BookController   controller.IBookController

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

	// NATS (optional; the dashboard fan-out degrades gracefully without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Services
	sessionRepo := memory.NewWizardSessionRepository()

	publisherService := service.NewPublisherService(cfg.App.SectionSavedTopic, pubSub)
	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SectionSavedTopic,
		natsPub,
		eventLogger,
	)

	bookService := service.NewBookService(uowFactory)
	wizardService := service.NewWizardService(
		bookService,
		sessionRepo,
		publisherService,
		sysLogger,
	)

	// 4. Controllers
	wizardController := controller.NewWizardController(wizardService)
	bookController := controller.NewBookController(bookService)

	return &Container{
		WizardController: wizardController,
		BookController:   bookController,
		ConsumerService:  consumerService,
	}
}

// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innkeeper/config"
	"innkeeper/cron"
	"innkeeper/database"
	inquiryRepo "innkeeper/database/repository/inquiry"
	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/handlers"
	"innkeeper/middleware"
	"innkeeper/routes"
	"innkeeper/services/availability"
	"innkeeper/services/catalog"
	"innkeeper/services/conversation"
	"innkeeper/services/flow"
	"innkeeper/services/knowledge"
	"innkeeper/services/nlu"
	"innkeeper/services/notification"
	"innkeeper/services/router"
	"innkeeper/services/session"
	"innkeeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	biz, err := config.LoadBusiness(config.AppConfig.BusinessConfigPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load business config: %v", err)
	}

	// Create the Gin router.
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.ErrorHandler())
	engine.Use(gin.Logger())
	engine.Use(middleware.RateLimitMiddleware())

	// Repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	inqRepo := inquiryRepo.NewMongoInquiryRepo()

	// Services.
	sessionStore := session.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)
	catalogService := catalog.NewDefaultCatalogService(biz)
	availabilityEngine := availability.NewDefaultEngine(resRepo, biz)

	var classifier nlu.Classifier
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := nlu.NewGeminiClassifier(
			config.AppConfig.GeminiAPIKey,
			config.AppConfig.GeminiModel,
			time.Duration(config.AppConfig.NLUTimeoutSeconds)*time.Second,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize NLU classifier: %v", err)
		}
		classifier = gemini
	} else {
		logger.Sugar().Warn("main: no Gemini API key configured, NLU fallback disabled")
	}

	notifier := notification.NewAsynqNotifier()
	defer notifier.Close()

	flowService := flow.NewDefaultFlowService(
		resRepo, inqRepo, availabilityEngine, catalogService, notifier, biz,
		config.AppConfig.MaxInterrupts,
	)
	knowledgeService := knowledge.NewDefaultKnowledgeService(biz, knowledge.NewSearchClient())
	intentRouter := router.NewDefaultRouter(classifier, catalogService)

	conversationService := conversation.NewDefaultConversationService(
		sessionStore, intentRouter, flowService, knowledgeService, catalogService,
	)

	chatHandler := handlers.NewChatHandler(conversationService)
	reservationHandler := handlers.NewReservationHandler(resRepo)
	routes.RegisterRoutes(engine, chatHandler, reservationHandler)

	// Background workers.
	worker := cron.StartNotificationWorker()
	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: engine,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

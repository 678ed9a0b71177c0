package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wearly/supportbot/config"
	"github.com/wearly/supportbot/internal/api/handlers"
	"github.com/wearly/supportbot/internal/api/routes"
	"github.com/wearly/supportbot/internal/cache"
	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/logger"
	"github.com/wearly/supportbot/internal/providers/llm"
	mongorepo "github.com/wearly/supportbot/internal/repositories/mongo"
	pgrepo "github.com/wearly/supportbot/internal/repositories/postgres"
	"github.com/wearly/supportbot/internal/responder"
	"github.com/wearly/supportbot/internal/services"
)

func modelPath() string {
	if p := os.Getenv("MODEL_PATH"); p != "" {
		return p
	}
	return "models/intent_model.json"
}

func main() {
	_ = godotenv.Load()
	log := logger.New()

	// PostgreSQL is required; everything else degrades gracefully.
	db, err := config.NewPostgres()
	if err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.Info("postgres connected")

	var catalogCache cache.Cache
	if rdb, err := config.NewRedis(); err != nil {
		log.WithError(err).Warn("redis unavailable, catalog caching disabled")
	} else {
		catalogCache = cache.NewRedisCache(rdb)
		log.Info("redis connected")
	}

	var trainingRuns mongorepo.TrainingRunRepo
	if client, err := config.NewMongo(); err != nil {
		log.WithError(err).Warn("mongo unavailable, training history disabled")
	} else {
		trainingRuns, err = mongorepo.NewTrainingRunRepo(client, config.MongoDBName())
		if err != nil {
			log.WithError(err).Warn("training run store init failed")
		} else {
			log.Info("mongo connected")
		}
	}

	// Model artifact is optional; without it classification is rule-based.
	var model *intent.Model
	if m, err := intent.LoadModel(modelPath()); err != nil {
		log.WithError(err).WithField("path", modelPath()).
			Warn("model artifact not loaded, using rule-based classification")
	} else {
		model = m
		log.WithField("path", modelPath()).Info("model artifact loaded")
	}
	classifier := intent.NewClassifier(model, log)

	provider := llm.NewGroq(log)
	if !provider.Available() {
		log.Warn("GROQ_API_KEY not set, LLM enrichment disabled")
	}

	userRepo := pgrepo.NewUserRepo(db)
	convRepo := pgrepo.NewConversationRepo(db)
	msgRepo := pgrepo.NewMessageRepo(db)
	catalogRepo := pgrepo.NewCatalogRepo(db)

	convService := services.NewConversationService(userRepo, convRepo, msgRepo)
	catalogService := services.NewCatalogService(catalogRepo, catalogCache, log)
	trainingService := services.NewTrainingService(modelPath(), trainingRuns, log)
	chatService := services.NewChatService(
		classifier,
		responder.New(catalogRepo),
		provider,
		convService,
		msgRepo,
		catalogRepo,
		nil,
		log,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		Log:          log,
		Chat:         handlers.NewChatHandler(chatService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Conversation: handlers.NewConversationHandler(convService),
		Admin:        handlers.NewAdminHandler(trainingService),
		WS:           handlers.NewWSHandler(chatService, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

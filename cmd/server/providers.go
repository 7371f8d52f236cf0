package main

import (
	"context"
	"database/sql"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/assistant"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/config"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/handler"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/hub"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/media"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/repository/mongo"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/repository/postgres"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/service"
)

// App is the main application container.
type App struct {
	Config *config.Config
	Hub    *hub.Hub
	WS     *handler.WebsocketHandler
	API    *handler.APIHandler
}

func provideContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() { cancel() }
}

func providePostgresDB(cfg *config.Config) (*sql.DB, func(), error) {
	if err := postgres.RunMigrations(cfg.PostgresURL); err != nil {
		return nil, nil, err
	}
	db, err := postgres.NewDB(cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }
	return db, cleanup, nil
}

func provideMongoDB(ctx context.Context, cfg *config.Config) (*mongodriver.Database, func(), error) {
	db, err := mongo.NewDB(ctx, cfg.MongoURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Client().Disconnect(ctx) }
	return db, cleanup, nil
}

func provideAssistant(cfg *config.Config) *assistant.Client {
	return assistant.New(assistant.Config{
		BaseURL: cfg.AssistantBaseURL,
		APIKey:  cfg.AssistantAPIKey,
		Model:   cfg.AssistantModel,
	})
}

func provideResolver(cfg *config.Config) *media.Resolver {
	return media.NewResolver(cfg.MediaSearchURL, nil)
}

func provideClassifier(cfg *config.Config, resolver *media.Resolver) *hub.Classifier {
	return hub.NewClassifier(cfg.AssistantName, cfg.MediaTrigger, cfg.MediaEmbedURL, resolver)
}

func provideHubOptions(cfg *config.Config, messages service.IMessageRepository, responder hub.Responder, classifier *hub.Classifier) hub.Options {
	return hub.Options{
		AssistantName:    cfg.AssistantName,
		AssistantTimeout: cfg.AssistantTimeout,
		Classifier:       classifier,
		Messages:         messages,
		Responder:        responder,
		Location:         cfg.ChatLocation,
		HistoryLimit:     cfg.HistoryLimit,
	}
}

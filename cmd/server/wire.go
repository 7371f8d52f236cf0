//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/assistant"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/config"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/handler"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/hub"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/repository/mongo"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/repository/postgres"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/service"
)

// InitializeApp creates a new application.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		// Database & Context Providers
		wire.NewSet(
			provideContext,
			providePostgresDB,
			provideMongoDB,
		),
		// Repository Providers
		wire.NewSet(
			postgres.NewUserRepository,
			wire.Bind(new(service.IUserRepository), new(*postgres.UserRepository)),

			mongo.NewMessageRepository,
			wire.Bind(new(service.IMessageRepository), new(*mongo.MessageRepository)),
		),
		// Service Providers
		wire.NewSet(
			service.NewUserService,
			wire.Bind(new(service.IUserService), new(*service.UserService)),

			service.NewHistoryService,
			wire.Bind(new(service.IHistoryService), new(*service.HistoryService)),
		),
		// Room Providers
		wire.NewSet(
			provideAssistant,
			wire.Bind(new(hub.Responder), new(*assistant.Client)),

			provideResolver,
			provideClassifier,
			provideHubOptions,
			hub.NewHub,
			wire.Bind(new(handler.Presence), new(*hub.Hub)),
		),
		// Handler Providers
		wire.NewSet(
			handler.NewWebsocketHandler,
			handler.NewAPIHandler,
		),
		// App Provider
		wire.NewSet(
			wire.Struct(new(App), "*"),
		),
	)
	return nil, nil, nil
}

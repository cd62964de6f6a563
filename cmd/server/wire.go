//go:build wireinject

package main

import (
	"github.com/google/wire"

	"animehi.app/anime-api-gateway/app/domain"
	"animehi.app/anime-api-gateway/app/infrastructure"
	"animehi.app/anime-api-gateway/app/infrastructure/database"
	"animehi.app/anime-api-gateway/app/infrastructure/database/repository"
	"animehi.app/anime-api-gateway/app/interfaces/http"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		repository.RepositoryProvider,
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

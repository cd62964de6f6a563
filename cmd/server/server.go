package main

import (
	"context"

	"github.com/mileusna/crontab"

	"animehi.app/anime-api-gateway/app/domain/healthcheck"
	"animehi.app/anime-api-gateway/app/interfaces/http"
	"animehi.app/anime-api-gateway/app/utils/httpclients/anilist"
	"animehi.app/anime-api-gateway/app/utils/httpclients/consumet"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

type Application struct {
	HttpServer         *http.HttpServer
	HealthcheckService *healthcheck.HealthcheckCrontabService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	consumet.Init()
	anilist.Init()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	cron := crontab.New()
	application.HealthcheckService.Start(context.Background(), cron)
	application.Start()
}

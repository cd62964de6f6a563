package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api"
	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/app/utils/metrics"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

type HttpServer struct {
	engine       *gin.Engine
	apiRoute     *api.ApiRoute
	cacheService cache.CacheService
	recorder     *metrics.Recorder
}

func NewHttpServer(apiRoute *api.ApiRoute, cacheService cache.CacheService, recorder *metrics.Recorder) *HttpServer {
	if environment_variables.EnvironmentVariables.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HttpServer{
		engine:       gin.New(),
		apiRoute:     apiRoute,
		cacheService: cacheService,
		recorder:     recorder,
	}
	server.engine.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(logger.GetLogger()),
		middleware.CORS(),
		middleware.CacheControl(),
	)
	server.engine.GET("/health", server.Health)
	server.engine.GET("/metrics", gin.WrapH(recorder.Handler()))
	return &server
}

// Health reports liveness plus the state of the cache backend. A degraded
// cache is reported but never fails the check; the API serves without one.
func (httpServer *HttpServer) Health(reqCtx *gin.Context) {
	cacheStatus := "ok"
	if err := httpServer.cacheService.HealthCheck(reqCtx.Request.Context()); err != nil {
		cacheStatus = "unavailable"
	}
	reqCtx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  cacheStatus,
	})
}

func (httpServer *HttpServer) Run() error {
	httpServer.apiRoute.RegisterRouter(httpServer.engine)
	port := environment_variables.EnvironmentVariables.PORT
	if port == 0 {
		port = 4000
	}
	return httpServer.engine.Run(fmt.Sprintf(":%d", port))
}

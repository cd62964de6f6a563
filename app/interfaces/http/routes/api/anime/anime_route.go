package anime

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	animedomain "animehi.app/anime-api-gateway/app/domain/anime"
	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/interfaces/http/helpers"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
	"animehi.app/anime-api-gateway/app/utils/httpclients/consumet"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// streamingAPI registers the shared route surface of one streaming upstream.
// Zoro and animekai expose the same shape; only the prefix and upstream URL
// differ.
type streamingAPI struct {
	name         string
	upstreamURL  string
	provider     animedomain.StreamingProvider
	cacheService cache.CacheService
}

// Category listings exposed as static routes, matching the upstream's route
// table.
var categoryRoutes = []string{"movies", "ona", "ova", "specials", "tv"}

func (api *streamingAPI) RegisterRouter(router gin.IRouter) {
	streamingRouter := router.Group("/anime/" + api.name)
	streamingRouter.GET("", api.Intro)
	streamingRouter.GET("/search/:query", api.Search)
	streamingRouter.GET("/recent-episodes", api.listing(api.provider.RecentEpisodes))
	streamingRouter.GET("/top-airing", api.listing(api.provider.TopAiring))
	streamingRouter.GET("/most-popular", api.listing(api.provider.MostPopular))
	streamingRouter.GET("/most-favorite", api.listing(api.provider.MostFavorite))
	streamingRouter.GET("/latest-completed", api.listing(api.provider.LatestCompleted))
	streamingRouter.GET("/recent-added", api.listing(api.provider.RecentAdded))
	streamingRouter.GET("/top-upcoming", api.listing(api.provider.TopUpcoming))
	streamingRouter.GET("/schedule/:date", api.Schedule)
	streamingRouter.GET("/info", api.Info)
	streamingRouter.GET("/watch/:episodeId", api.Watch)
	streamingRouter.GET("/genre/list", api.GenreList)
	streamingRouter.GET("/genre/:genre", api.Genre)
	for _, category := range categoryRoutes {
		name := category
		streamingRouter.GET("/"+name, api.listing(func(ctx context.Context, page int) (json.RawMessage, error) {
			return api.provider.Category(ctx, name, page)
		}))
	}
	streamingRouter.GET("/:query", api.Search)
}

func (api *streamingAPI) Intro(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, gin.H{
		"intro":    "Welcome to the " + api.name + " provider",
		"upstream": api.upstreamURL,
		"routes": []string{
			"/search/:query", "/recent-episodes", "/top-airing", "/most-popular",
			"/most-favorite", "/latest-completed", "/recent-added",
			"/top-upcoming", "/schedule/:date", "/info?id=", "/watch/:episodeId",
			"/genre/list", "/genre/:genre", "/movies", "/ona", "/ova",
			"/specials", "/tv",
		},
	})
}

func pageQuery(reqCtx *gin.Context) int {
	page, err := strconv.Atoi(reqCtx.Query("page"))
	if err != nil {
		return 0
	}
	return page
}

// Listings churn too fast to be worth a cache entry; only info and watch go
// through the response cache.
func (api *streamingAPI) listing(fetch func(ctx context.Context, page int) (json.RawMessage, error)) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		page := pageQuery(reqCtx)
		helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
			return fetch(ctx, page)
		})
	}
}

func (api *streamingAPI) Search(reqCtx *gin.Context) {
	query := reqCtx.Param("query")
	page := pageQuery(reqCtx)
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.Search(ctx, query, page)
	})
}

func (api *streamingAPI) Schedule(reqCtx *gin.Context) {
	date := reqCtx.Param("date")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.Schedule(ctx, date)
	})
}

func (api *streamingAPI) Info(reqCtx *gin.Context) {
	id := reqCtx.Query("id")
	if id == "" {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "id query parameter is required"})
		return
	}
	helpers.ReplyCached(reqCtx, api.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.Info(ctx, id)
	})
}

func (api *streamingAPI) Watch(reqCtx *gin.Context) {
	episodeID := reqCtx.Param("episodeId")
	server := reqCtx.Query("server")
	category := reqCtx.Query("category")
	helpers.ReplyCached(reqCtx, api.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.Watch(ctx, episodeID, server, category)
	})
}

func (api *streamingAPI) GenreList(reqCtx *gin.Context) {
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.GenreList(ctx)
	})
}

func (api *streamingAPI) Genre(reqCtx *gin.Context) {
	genre := reqCtx.Param("genre")
	page := pageQuery(reqCtx)
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return api.provider.Genre(ctx, genre, page)
	})
}

type ZoroRoute struct {
	streamingAPI
}

func NewZoroRoute(client consumet.ZoroClient, cacheService cache.CacheService) *ZoroRoute {
	return &ZoroRoute{streamingAPI{
		name:         "zoro",
		upstreamURL:  environment_variables.EnvironmentVariables.ZORO_URL,
		provider:     client,
		cacheService: cacheService,
	}}
}

type AnimekaiRoute struct {
	streamingAPI
}

func NewAnimekaiRoute(client consumet.AnimekaiClient, cacheService cache.CacheService) *AnimekaiRoute {
	return &AnimekaiRoute{streamingAPI{
		name:         "animekai",
		upstreamURL:  environment_variables.EnvironmentVariables.ANIMEKAI_URL,
		provider:     client,
		cacheService: cacheService,
	}}
}

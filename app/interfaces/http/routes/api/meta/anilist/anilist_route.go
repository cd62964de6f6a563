package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/anime"
	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/interfaces/http/helpers"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
)

type AnilistRoute struct {
	meta         anime.MetaProvider
	cacheService cache.CacheService
}

func NewAnilistRoute(meta anime.MetaProvider, cacheService cache.CacheService) *AnilistRoute {
	return &AnilistRoute{
		meta:         meta,
		cacheService: cacheService,
	}
}

// Cached routes mirror the upstream service's selection; the remaining
// lookups answer straight from the provider.
func (route *AnilistRoute) RegisterRouter(router gin.IRouter) {
	anilistRouter := router.Group("/meta/anilist")
	anilistRouter.GET("", route.Intro)
	anilistRouter.GET("/search/:query", route.Search)
	anilistRouter.GET("/trending", route.Trending)
	anilistRouter.GET("/popular", route.Popular)
	anilistRouter.GET("/advanced-search", route.AdvancedSearch)
	anilistRouter.GET("/airing-schedule", route.AiringSchedule)
	anilistRouter.GET("/genre", route.Genre)
	anilistRouter.GET("/recent-episodes", route.RecentEpisodes)
	anilistRouter.GET("/random-anime", route.Random)
	anilistRouter.GET("/info/:id", route.Info)
	anilistRouter.GET("/data/:id", route.Data)
	anilistRouter.GET("/episodes/:id", route.Episodes)
	anilistRouter.GET("/watch/:episodeId", route.Watch)
	anilistRouter.GET("/character/:id", route.Character)
	anilistRouter.GET("/staff/:id", route.Staff)
	anilistRouter.GET("/servers/:id", route.Servers)
	anilistRouter.GET("/:query", route.Search)
}

// @Summary AniList provider index
// @Tags anilist
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/meta/anilist [get]
func (route *AnilistRoute) Intro(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, gin.H{
		"intro": "Welcome to the anilist provider",
		"routes": []string{
			"/search/:query", "/advanced-search", "/trending", "/popular",
			"/episodes/:id", "/watch/:episodeId", "/info/:id", "/data/:id",
			"/character/:id", "/staff/:id", "/airing-schedule", "/genre",
			"/recent-episodes", "/random-anime", "/servers/:id",
		},
	})
}

func intQuery(reqCtx *gin.Context, name string) int {
	v, err := strconv.Atoi(reqCtx.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func boolQuery(reqCtx *gin.Context, name string) bool {
	return reqCtx.Query(name) == "true"
}

// jsonArrayQuery decodes query parameters the upstream expects as JSON
// arrays, e.g. genres=["Action","Comedy"].
func jsonArrayQuery(reqCtx *gin.Context, name string) ([]string, bool) {
	raw := reqCtx.Query(name)
	if raw == "" {
		return nil, true
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

// @Summary Search anime by title
// @Tags anilist
// @Produce json
// @Param query path string true "Search query"
// @Success 200 {object} responses.GeneralResponse[json.RawMessage]
// @Router /api/meta/anilist/{query} [get]
func (route *AnilistRoute) Search(reqCtx *gin.Context) {
	query := reqCtx.Param("query")
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Search(ctx, query, page, perPage)
	})
}

// @Summary Advanced search with filters
// @Tags anilist
// @Produce json
// @Success 200 {object} responses.GeneralResponse[json.RawMessage]
// @Failure 400 {object} responses.ErrorResponse "Unknown genre or season"
// @Router /api/meta/anilist/advanced-search [get]
func (route *AnilistRoute) AdvancedSearch(reqCtx *gin.Context) {
	genres, ok := jsonArrayQuery(reqCtx, "genres")
	if !ok {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "genres must be a JSON array of strings"})
		return
	}
	for _, genre := range genres {
		if !anime.IsValidGenre(genre) {
			reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "unknown genre: " + genre})
			return
		}
	}
	sort, ok := jsonArrayQuery(reqCtx, "sort")
	if !ok {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "sort must be a JSON array of strings"})
		return
	}
	season := reqCtx.Query("season")
	if season != "" && !anime.IsValidSeason(season) {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "unknown season: " + season})
		return
	}

	params := anime.AdvancedSearchParams{
		Query:   reqCtx.Query("query"),
		Type:    reqCtx.Query("type"),
		Page:    intQuery(reqCtx, "page"),
		PerPage: intQuery(reqCtx, "perPage"),
		Format:  reqCtx.Query("format"),
		Sort:    sort,
		Genres:  genres,
		ID:      reqCtx.Query("id"),
		Year:    intQuery(reqCtx, "year"),
		Status:  reqCtx.Query("status"),
		Season:  season,
	}
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.AdvancedSearch(ctx, params)
	})
}

func (route *AnilistRoute) Trending(reqCtx *gin.Context) {
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Trending(ctx, page, perPage)
	})
}

func (route *AnilistRoute) Popular(reqCtx *gin.Context) {
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Popular(ctx, page, perPage)
	})
}

// @Summary Get anime info with episode provider data
// @Tags anilist
// @Produce json
// @Param id path string true "AniList ID"
// @Success 200 {object} responses.GeneralResponse[json.RawMessage]
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/meta/anilist/info/{id} [get]
func (route *AnilistRoute) Info(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	provider := reqCtx.Query("provider")
	dub, fetchFiller := boolQuery(reqCtx, "dub"), boolQuery(reqCtx, "fetchFiller")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Info(ctx, id, provider, dub, fetchFiller)
	})
}

func (route *AnilistRoute) Data(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Data(ctx, id)
	})
}

func (route *AnilistRoute) Episodes(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	provider := reqCtx.Query("provider")
	dub, fetchFiller := boolQuery(reqCtx, "dub"), boolQuery(reqCtx, "fetchFiller")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Episodes(ctx, id, provider, dub, fetchFiller)
	})
}

// @Summary Get streaming sources for an episode
// @Tags anilist
// @Produce json
// @Param episodeId path string true "Episode ID"
// @Success 200 {object} responses.GeneralResponse[json.RawMessage]
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/meta/anilist/watch/{episodeId} [get]
func (route *AnilistRoute) Watch(reqCtx *gin.Context) {
	episodeID := reqCtx.Param("episodeId")
	provider := reqCtx.Query("provider")
	server := reqCtx.Query("server")
	dub := boolQuery(reqCtx, "dub")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Watch(ctx, episodeID, provider, server, dub)
	})
}

func (route *AnilistRoute) Character(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Character(ctx, id)
	})
}

func (route *AnilistRoute) Staff(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	helpers.ReplyCached(reqCtx, route.cacheService, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Staff(ctx, id)
	})
}

func (route *AnilistRoute) AiringSchedule(reqCtx *gin.Context) {
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	weekStart, weekEnd := intQuery(reqCtx, "weekStart"), intQuery(reqCtx, "weekEnd")
	notYetAired := boolQuery(reqCtx, "notYetAired")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.AiringSchedule(ctx, page, perPage, weekStart, weekEnd, notYetAired)
	})
}

func (route *AnilistRoute) Genre(reqCtx *gin.Context) {
	genres, ok := jsonArrayQuery(reqCtx, "genres")
	if !ok || len(genres) == 0 {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "genres must be a JSON array of strings"})
		return
	}
	for _, genre := range genres {
		if !anime.IsValidGenre(genre) {
			reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "unknown genre: " + genre})
			return
		}
	}
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Genres(ctx, genres, page, perPage)
	})
}

func (route *AnilistRoute) RecentEpisodes(reqCtx *gin.Context) {
	provider := reqCtx.Query("provider")
	page, perPage := intQuery(reqCtx, "page"), intQuery(reqCtx, "perPage")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.RecentEpisodes(ctx, provider, page, perPage)
	})
}

// Random is deliberately uncached; a cached random pick would pin one result
// for the whole TTL.
func (route *AnilistRoute) Random(reqCtx *gin.Context) {
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Random(ctx)
	})
}

func (route *AnilistRoute) Servers(reqCtx *gin.Context) {
	id := reqCtx.Param("id")
	provider := reqCtx.Query("provider")
	helpers.ReplyFresh(reqCtx, func(ctx context.Context) (json.RawMessage, error) {
		return route.meta.Servers(ctx, id, provider)
	})
}

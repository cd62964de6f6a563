package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/anime"
	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
	"animehi.app/anime-api-gateway/app/utils/logger"
)

// ReplyCached serves a provider payload through the response cache, keyed by
// the config the cache middleware derived for this request. The upstream JSON
// is passed through inside the success envelope without re-encoding.
func ReplyCached(reqCtx *gin.Context, cacheService cache.CacheService, compute func(ctx context.Context) (json.RawMessage, error)) {
	ctx := reqCtx.Request.Context()
	cfg := middleware.GetCacheConfig(reqCtx)
	payload, err := cacheService.GetOrSet(ctx, cfg.Key, cfg.Duration, func() (any, error) {
		return compute(ctx)
	})
	if err != nil {
		ReplyProviderError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.Raw(payload))
}

// ReplyFresh serves a provider payload without touching the cache, for routes
// where a cached answer would be wrong (random picks).
func ReplyFresh(reqCtx *gin.Context, compute func(ctx context.Context) (json.RawMessage, error)) {
	payload, err := compute(reqCtx.Request.Context())
	if err != nil {
		ReplyProviderError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.Raw(payload))
}

func ReplyProviderError(reqCtx *gin.Context, err error) {
	if errors.Is(err, anime.ErrNotFound) {
		reqCtx.JSON(http.StatusNotFound, responses.ErrorResponse{
			Message: "not found",
		})
		return
	}
	logger.GetLogger().Errorf("provider request failed: %v", err)
	reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{
		Message: "internal server error",
	})
}

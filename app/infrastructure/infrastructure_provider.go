package infrastructure

import (
	"github.com/google/wire"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/infrastructure/ratelimit"
	"animehi.app/anime-api-gateway/app/utils/httpclients/consumet"
	"animehi.app/anime-api-gateway/app/utils/metrics"
)

var InfrastructureProvider = wire.NewSet(
	metrics.NewDefaultRecorder,
	cache.NewCacheService,
	cache.NewRedsync,
	ratelimit.NewCounterStore,
	consumet.NewAnilistClient,
	consumet.NewZoroClient,
	consumet.NewAnimekaiClient,
)

package routes

import (
	"github.com/google/wire"

	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api/anime"
	authroute "animehi.app/anime-api-gateway/app/interfaces/http/routes/api/auth"
	commentroute "animehi.app/anime-api-gateway/app/interfaces/http/routes/api/comment"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api/meta/anilist"
)

var RouteProvider = wire.NewSet(
	middleware.NewRateLimiterRegistry,
	anilist.NewAnilistRoute,
	anime.NewZoroRoute,
	anime.NewAnimekaiRoute,
	commentroute.NewCommentRoute,
	authroute.NewAuthRoute,
	api.NewApiRoute,
)

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/auth"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api/anime"
	authroute "animehi.app/anime-api-gateway/app/interfaces/http/routes/api/auth"
	commentroute "animehi.app/anime-api-gateway/app/interfaces/http/routes/api/comment"
	"animehi.app/anime-api-gateway/app/interfaces/http/routes/api/meta/anilist"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// basePath is stripped from request paths when deriving cache keys, so the
// same logical resource shares an entry regardless of the mount point.
const basePath = "/api"

type ApiRoute struct {
	anilistRoute  *anilist.AnilistRoute
	zoroRoute     *anime.ZoroRoute
	animekaiRoute *anime.AnimekaiRoute
	commentRoute  *commentroute.CommentRoute
	authRoute     *authroute.AuthRoute
	authService   *auth.AuthService
	limiters      *middleware.RateLimiterRegistry
}

func NewApiRoute(
	anilistRoute *anilist.AnilistRoute,
	zoroRoute *anime.ZoroRoute,
	animekaiRoute *anime.AnimekaiRoute,
	commentRoute *commentroute.CommentRoute,
	authRoute *authroute.AuthRoute,
	authService *auth.AuthService,
	limiters *middleware.RateLimiterRegistry,
) *ApiRoute {
	return &ApiRoute{
		anilistRoute:  anilistRoute,
		zoroRoute:     zoroRoute,
		animekaiRoute: animekaiRoute,
		commentRoute:  commentRoute,
		authRoute:     authRoute,
		authService:   authService,
		limiters:      limiters,
	}
}

func (apiRoute *ApiRoute) RegisterRouter(router gin.IRouter) {
	apiRouter := router.Group(basePath,
		middleware.CacheConfigSetter(len(basePath)),
		apiRoute.authService.OptionalAuthMiddleware(),
	)
	// The catch-all limiter only makes sense on a shared public deployment;
	// HOSTNAME doubles as the flag for that.
	if environment_variables.EnvironmentVariables.HOSTNAME != "" {
		apiRouter.Use(apiRoute.limiters.Global)
	}

	apiRouter.GET("", Intro)
	apiRoute.anilistRoute.RegisterRouter(apiRouter)
	apiRoute.zoroRoute.RegisterRouter(apiRouter)
	apiRoute.animekaiRoute.RegisterRouter(apiRouter)
	apiRoute.commentRoute.RegisterRouter(apiRouter)
	apiRoute.authRoute.RegisterRouter(apiRouter)
}

// @Summary API index
// @Tags system
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api [get]
func Intro(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, gin.H{
		"intro": "Welcome to the AnimeHi API 🎉",
		"providers": []string{
			"/api/meta/anilist",
			"/api/anime/zoro",
			"/api/anime/animekai",
		},
	})
}

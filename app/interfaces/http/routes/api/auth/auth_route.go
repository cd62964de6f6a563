package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"animehi.app/anime-api-gateway/app/domain/auth"
	"animehi.app/anime-api-gateway/app/domain/user"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
	anilistclient "animehi.app/anime-api-gateway/app/utils/httpclients/anilist"
	"animehi.app/anime-api-gateway/app/utils/idgen"
	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

type AuthRoute struct {
	authService *auth.AuthService
	userService *user.UserService
	oauthConfig *oauth2.Config
	limiters    *middleware.RateLimiterRegistry
}

func NewAuthRoute(
	authService *auth.AuthService,
	userService *user.UserService,
	limiters *middleware.RateLimiterRegistry,
) *AuthRoute {
	return &AuthRoute{
		authService: authService,
		userService: userService,
		oauthConfig: anilistclient.NewOAuthConfig(),
		limiters:    limiters,
	}
}

// The auth bucket guards the endpoints that mint credentials; logout and
// profile reads are left to the global limiter.
func (route *AuthRoute) RegisterRouter(router gin.IRouter) {
	authRouter := router.Group("/auth")
	authRouter.GET("/anilist/login", route.limiters.Auth, route.AnilistLogin)
	authRouter.GET("/anilist/callback", route.limiters.Auth, route.AnilistCallback)
	authRouter.GET("/refresh", route.limiters.Auth, route.Refresh)
	authRouter.POST("/logout", route.Logout)
	authRouter.GET("/me",
		route.authService.VerifyLoginMiddleware(),
		route.authService.RegisteredUserMiddleware(),
		route.GetMe,
	)
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type GetMeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func setSessionCookie(reqCtx *gin.Context, name, value string, maxAge int) {
	secure := environment_variables.EnvironmentVariables.IsProduction()
	reqCtx.SetSameSite(http.SameSiteLaxMode)
	reqCtx.SetCookie(name, value, maxAge, "/", "", secure, true)
}

func clearSessionCookie(reqCtx *gin.Context, name string) {
	setSessionCookie(reqCtx, name, "", -1)
}

// issueSession mints the access and refresh token cookies for a user.
func issueSession(reqCtx *gin.Context, u *user.User) error {
	accessToken, err := auth.CreateJwtSignedString(auth.NewUserClaim(u.PublicID, u.Name, auth.AccessTokenLifetime))
	if err != nil {
		return err
	}
	refreshToken, err := auth.CreateJwtSignedString(auth.NewUserClaim(u.PublicID, u.Name, auth.RefreshTokenLifetime))
	if err != nil {
		return err
	}
	setSessionCookie(reqCtx, auth.AccessTokenKey, accessToken, int(auth.AccessTokenLifetime.Seconds()))
	setSessionCookie(reqCtx, auth.RefreshTokenKey, refreshToken, int(auth.RefreshTokenLifetime.Seconds()))
	return nil
}

// @Summary Start the AniList OAuth flow
// @Description Redirects the browser to AniList's consent screen.
// @Tags auth
// @Success 307 "Redirect to AniList"
// @Failure 429 {object} responses.RateLimitExceededResponse
// @Router /api/auth/anilist/login [get]
func (route *AuthRoute) AnilistLogin(reqCtx *gin.Context) {
	state, err := idgen.GenerateSecureID("state", 24)
	if err != nil {
		reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{Message: "internal server error"})
		return
	}
	setSessionCookie(reqCtx, auth.OAuthStateKey, state, 600)
	reqCtx.Redirect(http.StatusTemporaryRedirect, route.oauthConfig.AuthCodeURL(state))
}

// @Summary AniList OAuth callback
// @Description Exchanges the authorization code, upserts the user and issues
// @Description session cookies, then redirects back to the frontend.
// @Tags auth
// @Success 307 "Redirect to the frontend"
// @Failure 400 {object} responses.ErrorResponse "State mismatch or missing code"
// @Failure 401 {object} responses.ErrorResponse "Code exchange failed"
// @Router /api/auth/anilist/callback [get]
func (route *AuthRoute) AnilistCallback(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	expectedState, err := reqCtx.Cookie(auth.OAuthStateKey)
	if err != nil || expectedState == "" || reqCtx.Query("state") != expectedState {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "oauth state mismatch"})
		return
	}
	clearSessionCookie(reqCtx, auth.OAuthStateKey)

	code := reqCtx.Query("code")
	if code == "" {
		reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{Message: "missing authorization code"})
		return
	}

	token, err := route.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.GetLogger().Warnf("anilist code exchange failed: %v", err)
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "authorization failed"})
		return
	}

	viewer, err := anilistclient.FetchViewer(ctx, token.AccessToken)
	if err != nil {
		logger.GetLogger().Warnf("anilist viewer lookup failed: %v", err)
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "authorization failed"})
		return
	}

	u, err := route.userService.RegisterOrRefresh(ctx, viewer.ID, viewer.Name, viewer.Avatar)
	if err != nil {
		reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{Message: "internal server error"})
		return
	}

	if err := issueSession(reqCtx, u); err != nil {
		reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{Message: "internal server error"})
		return
	}
	reqCtx.Redirect(http.StatusTemporaryRedirect, environment_variables.EnvironmentVariables.FRONTEND_URL)
}

// @Summary Refresh the access token
// @Description Uses the refresh token cookie to mint a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} responses.GeneralResponse[AccessTokenResponse]
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/auth/refresh [get]
func (route *AuthRoute) Refresh(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	refreshToken, err := reqCtx.Cookie(auth.RefreshTokenKey)
	if err != nil || refreshToken == "" {
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "login required"})
		return
	}
	claims, err := auth.ParseUserClaim(refreshToken)
	if err != nil {
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "login required"})
		return
	}

	u, err := route.userService.FindByPublicID(ctx, claims.Subject)
	if err != nil || u == nil || !u.Enabled {
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "unknown user"})
		return
	}

	accessToken, err := auth.CreateJwtSignedString(auth.NewUserClaim(u.PublicID, u.Name, auth.AccessTokenLifetime))
	if err != nil {
		reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{Message: "internal server error"})
		return
	}
	setSessionCookie(reqCtx, auth.AccessTokenKey, accessToken, int(auth.AccessTokenLifetime.Seconds()))
	reqCtx.JSON(http.StatusOK, responses.OK(AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(auth.AccessTokenLifetime.Seconds()),
	}))
}

// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} responses.GeneralResponse[bool]
// @Router /api/auth/logout [post]
func (route *AuthRoute) Logout(reqCtx *gin.Context) {
	clearSessionCookie(reqCtx, auth.AccessTokenKey)
	clearSessionCookie(reqCtx, auth.RefreshTokenKey)
	reqCtx.JSON(http.StatusOK, responses.OK(true))
}

// @Summary Get the signed-in user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.GeneralResponse[GetMeResponse]
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/auth/me [get]
func (route *AuthRoute) GetMe(reqCtx *gin.Context) {
	u, ok := auth.GetUserFromContext(reqCtx)
	if !ok {
		reqCtx.JSON(http.StatusUnauthorized, responses.ErrorResponse{Message: "login required"})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.OK(GetMeResponse{
		ID:     u.PublicID,
		Name:   u.Name,
		Avatar: u.Avatar,
	}))
}

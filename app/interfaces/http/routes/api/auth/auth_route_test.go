package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "animehi.app/anime-api-gateway/app/domain/auth"
	"animehi.app/anime-api-gateway/app/domain/user"
	"animehi.app/anime-api-gateway/app/infrastructure/ratelimit"
	"animehi.app/anime-api-gateway/app/interfaces/http/middleware"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*user.User{}}
	for _, u := range users {
		repo.users[u.PublicID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users[u.PublicID] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.users[u.PublicID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByPublicID(_ context.Context, publicID string) (*user.User, error) {
	return r.users[publicID], nil
}

func (r *fakeUserRepo) FindByAnilistID(_ context.Context, anilistID int) (*user.User, error) {
	for _, u := range r.users {
		if u.AnilistID == anilistID {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthRouter(t *testing.T, users ...*user.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"

	userService := user.NewService(newFakeUserRepo(users...))
	authService := domainauth.NewAuthService(userService)
	limiters := middleware.NewRateLimiterRegistry(ratelimit.NewMemoryCounterStore(), nil)

	router := gin.New()
	apiRouter := router.Group("/api")
	NewAuthRoute(authService, userService, limiters).RegisterRouter(apiRouter)
	return router
}

func signedToken(t *testing.T, publicID string, lifetime time.Duration) string {
	t.Helper()
	token, err := domainauth.CreateJwtSignedString(domainauth.NewUserClaim(publicID, "tester", lifetime))
	require.NoError(t, err)
	return token
}

func TestAnilistLoginRedirectsWithState(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/anilist/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "anilist.co/api/v2/oauth/authorize")
	assert.Contains(t, location, "state=")

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == domainauth.OAuthStateKey {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.Contains(t, location, stateCookie.Value)
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/anilist/callback?state=evil&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: domainauth.OAuthStateKey, Value: "expected"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	u := &user.User{ID: 1, PublicID: "user_abc", AnilistID: 42, Name: "tester", Enabled: true}
	router := newAuthRouter(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{
		Name:  domainauth.RefreshTokenKey,
		Value: signedToken(t, u.PublicID, domainauth.RefreshTokenLifetime),
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accessToken")

	var accessCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == domainauth.AccessTokenKey {
			accessCookie = c
		}
	}
	require.NotNil(t, accessCookie)
	assert.NotEmpty(t, accessCookie.Value)
}

func TestRefreshWithoutCookieIsUnauthorized(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshForDisabledUserIsUnauthorized(t *testing.T) {
	u := &user.User{ID: 1, PublicID: "user_abc", Name: "tester", Enabled: false}
	router := newAuthRouter(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{
		Name:  domainauth.RefreshTokenKey,
		Value: signedToken(t, u.PublicID, domainauth.RefreshTokenLifetime),
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsSessionCookies(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || (c.MaxAge == 0 && c.Value == "") {
			cleared[c.Name] = true
		}
	}
	assert.True(t, cleared[domainauth.AccessTokenKey])
	assert.True(t, cleared[domainauth.RefreshTokenKey])
}

func TestGetMeRequiresLogin(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMeReturnsProfile(t *testing.T) {
	u := &user.User{ID: 1, PublicID: "user_abc", Name: "tester", Avatar: "https://img/avatar.png", Enabled: true}
	router := newAuthRouter(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, u.PublicID, domainauth.AccessTokenLifetime))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "user_abc"))
	assert.True(t, strings.Contains(body, "tester"))
}

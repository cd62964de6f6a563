package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/user"
	"animehi.app/anime-api-gateway/app/interfaces/http/requests"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
)

type AuthService struct {
	userService *user.UserService
}

func NewAuthService(userService *user.UserService) *AuthService {
	return &AuthService{
		userService: userService,
	}
}

type UserContextKey string

const (
	UserContextKeyEntity UserContextKey = "UserContextKeyEntity"
	UserContextKeyID     UserContextKey = "UserContextKeyID"
)

// OptionalAuthMiddleware resolves the session identity when one is present
// and never rejects. Anonymous requests continue unchanged; the rate-limit
// fingerprint falls back to the client address for them.
func (s *AuthService) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		if claims, ok := s.claimsFromRequest(reqCtx); ok {
			SetUserIDToContext(reqCtx, claims.Subject)
		}
		reqCtx.Next()
	}
}

// VerifyLoginMiddleware rejects requests without a valid session token.
func (s *AuthService) VerifyLoginMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		claims, ok := s.claimsFromRequest(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Message: "login required",
			})
			return
		}
		SetUserIDToContext(reqCtx, claims.Subject)
		reqCtx.Next()
	}
}

// RegisteredUserMiddleware loads the user entity behind the session identity.
// Must run after VerifyLoginMiddleware.
func (s *AuthService) RegisteredUserMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		ctx := reqCtx.Request.Context()
		userPublicID, ok := GetUserIDFromContext(reqCtx)
		if !ok || userPublicID == "" {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Message: "login required",
			})
			return
		}
		u, err := s.userService.FindByPublicID(ctx, userPublicID)
		if err != nil || u == nil || !u.Enabled {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Message: "unknown user",
			})
			return
		}
		SetUserToContext(reqCtx, u)
		reqCtx.Next()
	}
}

// claimsFromRequest accepts a bearer token first, the session cookie second.
func (s *AuthService) claimsFromRequest(reqCtx *gin.Context) (*UserClaim, bool) {
	tokenString, ok := requests.GetTokenFromBearer(reqCtx)
	if !ok {
		cookie, err := reqCtx.Cookie(AccessTokenKey)
		if err != nil || cookie == "" {
			return nil, false
		}
		tokenString = cookie
	}
	claims, err := ParseUserClaim(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func GetUserFromContext(reqCtx *gin.Context) (*user.User, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyEntity))
	if !ok {
		return nil, false
	}
	return v.(*user.User), true
}

func SetUserToContext(reqCtx *gin.Context, u *user.User) {
	reqCtx.Set(string(UserContextKeyEntity), u)
}

func GetUserIDFromContext(reqCtx *gin.Context) (string, bool) {
	userID, ok := reqCtx.Get(string(UserContextKeyID))
	if !ok {
		return "", false
	}
	v, ok := userID.(string)
	if !ok {
		return "", false
	}
	return v, true
}

func SetUserIDToContext(reqCtx *gin.Context, userID string) {
	reqCtx.Set(string(UserContextKeyID), userID)
}

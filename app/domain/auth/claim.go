package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"animehi.app/anime-api-gateway/config/environment_variables"
)

const RefreshTokenKey = "ani_refresh_token"
const AccessTokenKey = "ani_access_token"
const OAuthStateKey = "ani_oauth_state"

const AccessTokenLifetime = 15 * time.Minute
const RefreshTokenLifetime = 7 * 24 * time.Hour

// UserClaim carries the session identity; Subject is the user's public ID.
type UserClaim struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func NewUserClaim(publicID, name string, lifetime time.Duration) UserClaim {
	now := time.Now()
	return UserClaim{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   publicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
}

func CreateJwtSignedString(u UserClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, u)
	return token.SignedString([]byte(environment_variables.EnvironmentVariables.JWT_SECRET))
}

func ParseUserClaim(tokenString string) (*UserClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(environment_variables.EnvironmentVariables.JWT_SECRET), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(*UserClaim)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

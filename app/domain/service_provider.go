package domain

import (
	"github.com/google/wire"

	"animehi.app/anime-api-gateway/app/domain/auth"
	"animehi.app/anime-api-gateway/app/domain/comment"
	"animehi.app/anime-api-gateway/app/domain/healthcheck"
	"animehi.app/anime-api-gateway/app/domain/user"
)

var ServiceProvider = wire.NewSet(
	auth.NewAuthService,
	user.NewService,
	comment.NewService,
	healthcheck.NewService,
)

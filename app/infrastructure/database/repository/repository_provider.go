package repository

import (
	"github.com/google/wire"

	"animehi.app/anime-api-gateway/app/infrastructure/database/repository/commentrepo"
	"animehi.app/anime-api-gateway/app/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	commentrepo.NewCommentGormRepository,
)

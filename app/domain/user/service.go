package user

import (
	"context"

	"animehi.app/anime-api-gateway/app/utils/idgen"
)

type UserService struct {
	userrepo UserRepository
}

func NewService(userrepo UserRepository) *UserService {
	return &UserService{
		userrepo: userrepo,
	}
}

// RegisterOrRefresh upserts the user behind an AniList profile. Name and
// avatar follow whatever AniList currently reports.
func (s *UserService) RegisterOrRefresh(ctx context.Context, anilistID int, name, avatar string) (*User, error) {
	existing, err := s.userrepo.FindByAnilistID(ctx, anilistID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Name = name
		existing.Avatar = avatar
		if err := s.userrepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, err
	}
	u := &User{
		PublicID:  publicID,
		AnilistID: anilistID,
		Name:      name,
		Avatar:    avatar,
		Enabled:   true,
	}
	if err := s.userrepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) FindByPublicID(ctx context.Context, publicID string) (*User, error) {
	return s.userrepo.FindByPublicID(ctx, publicID)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*User, error) {
	return s.userrepo.FindByID(ctx, id)
}

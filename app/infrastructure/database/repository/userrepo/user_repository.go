package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "animehi.app/anime-api-gateway/app/domain/user"
	"animehi.app/anime-api-gateway/app/infrastructure/database/dbschema"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) domain.UserRepository {
	return &UserGormRepository{
		db: db,
	}
}

func (r *UserGormRepository) Create(ctx context.Context, u *domain.User) error {
	model := dbschema.NewSchemaUser(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	u.ID = model.ID
	return nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *domain.User) error {
	model := dbschema.NewSchemaUser(u)
	return r.db.WithContext(ctx).Model(&dbschema.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":    model.Name,
			"avatar":  model.Avatar,
			"enabled": model.Enabled,
		}).Error
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model dbschema.User
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	return r.findOne(ctx, "public_id = ?", publicID)
}

func (r *UserGormRepository) FindByAnilistID(ctx context.Context, anilistID int) (*domain.User, error) {
	return r.findOne(ctx, "anilist_id = ?", anilistID)
}

func (r *UserGormRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

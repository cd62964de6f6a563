package commentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "animehi.app/anime-api-gateway/app/domain/comment"
	"animehi.app/anime-api-gateway/app/infrastructure/database/dbschema"
)

type CommentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) domain.CommentRepository {
	return &CommentGormRepository{
		db: db,
	}
}

func (r *CommentGormRepository) Create(ctx context.Context, c *domain.Comment) error {
	model := dbschema.NewSchemaComment(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *CommentGormRepository) Update(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Model(&dbschema.Comment{}).
		Where("id = ?", c.ID).
		Update("content", c.Content).Error
}

func (r *CommentGormRepository) Delete(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Like rows reference both the root and its replies; they go first
		// or the reply delete trips over them.
		replyIDs := tx.Model(&dbschema.Comment{}).Select("id").Where("parent_id = ?", c.ID)
		if err := tx.Where("comment_id IN (?)", replyIDs).Delete(&dbschema.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", c.ID).Delete(&dbschema.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", c.ID).Delete(&dbschema.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbschema.Comment{}, c.ID).Error
	})
}

func (r *CommentGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Comment, error) {
	var model dbschema.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("public_id = ?", publicID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	likes, err := r.likeCount(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return model.EtoD(likes), nil
}

func (r *CommentGormRepository) ListByEpisode(ctx context.Context, episodeID string, page, pageSize int) ([]*domain.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&dbschema.Comment{}).
		Where("episode_id = ? AND parent_id IS NULL", episodeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []dbschema.Comment
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	comments, err := r.toDomain(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentGormRepository) ListReplies(ctx context.Context, parentID uint) ([]*domain.Comment, error) {
	var models []dbschema.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(ctx, models)
}

func (r *CommentGormRepository) ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing dbschema.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&dbschema.CommentLike{CommentID: commentID, UserID: userID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, 0, err
	}
	count, err := r.likeCount(ctx, commentID)
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

func (r *CommentGormRepository) likeCount(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbschema.CommentLike{}).
		Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *CommentGormRepository) toDomain(ctx context.Context, models []dbschema.Comment) ([]*domain.Comment, error) {
	comments := make([]*domain.Comment, 0, len(models))
	for i := range models {
		likes, err := r.likeCount(ctx, models[i].ID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, models[i].EtoD(likes))
	}
	return comments, nil
}

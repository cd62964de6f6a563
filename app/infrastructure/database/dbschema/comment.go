package dbschema

import (
	"animehi.app/anime-api-gateway/app/domain/comment"
	"animehi.app/anime-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Comment{}, CommentLike{})
}

type Comment struct {
	BaseModel
	PublicID  string `gorm:"uniqueIndex;not null"`
	EpisodeID string `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	ParentID  *uint  `gorm:"index"`
	Content   string `gorm:"not null"`
	User      User   `gorm:"foreignKey:UserID"`
	Likes     []CommentLike `gorm:"foreignKey:CommentID"`
}

type CommentLike struct {
	BaseModel
	CommentID uint `gorm:"uniqueIndex:idx_comment_like;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_comment_like;not null"`
}

func NewSchemaComment(c *comment.Comment) *Comment {
	return &Comment{
		BaseModel: BaseModel{
			ID: c.ID,
		},
		PublicID:  c.PublicID,
		EpisodeID: c.EpisodeID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
	}
}

func (c *Comment) EtoD(likeCount int64) *comment.Comment {
	return &comment.Comment{
		ID:             c.ID,
		PublicID:       c.PublicID,
		EpisodeID:      c.EpisodeID,
		UserID:         c.UserID,
		ParentID:       c.ParentID,
		Content:        c.Content,
		LikeCount:      likeCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		AuthorPublicID: c.User.PublicID,
		AuthorName:     c.User.Name,
		AuthorAvatar:   c.User.Avatar,
	}
}

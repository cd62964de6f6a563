package comment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("comment not found")
	ErrNotOwner = errors.New("comment does not belong to this user")
)

type Comment struct {
	ID        uint
	PublicID  string
	EpisodeID string
	UserID    uint
	ParentID  *uint
	Content   string
	LikeCount int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author fields are denormalized for rendering.
	AuthorPublicID string
	AuthorName     string
	AuthorAvatar   string
}

// Page is one page of top-level comments together with the paging that was
// actually applied.
type Page struct {
	Items    []*Comment
	Total    int64
	Page     int
	PageSize int
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, c *Comment) error
	FindByPublicID(ctx context.Context, publicID string) (*Comment, error)
	// ListByEpisode returns top-level comments, newest first.
	ListByEpisode(ctx context.Context, episodeID string, page, pageSize int) ([]*Comment, int64, error)
	ListReplies(ctx context.Context, parentID uint) ([]*Comment, error)
	// ToggleLike flips the (user, comment) like and returns the new state
	// with the updated count.
	ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error)
}

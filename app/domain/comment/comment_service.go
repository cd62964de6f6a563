package comment

import (
	"context"
	"strings"

	"animehi.app/anime-api-gateway/app/utils/idgen"
)

const DefaultPageSize = 20

type CommentService struct {
	commentrepo CommentRepository
}

func NewService(commentrepo CommentRepository) *CommentService {
	return &CommentService{
		commentrepo: commentrepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, userID uint, episodeID, content string) (*Comment, error) {
	publicID, err := idgen.GenerateSecureID("cmt", 16)
	if err != nil {
		return nil, err
	}
	c := &Comment{
		PublicID:  publicID,
		EpisodeID: episodeID,
		UserID:    userID,
		Content:   strings.TrimSpace(content),
	}
	if err := s.commentrepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateReply attaches a comment under parentPublicID, inheriting its
// episode. Replies to replies hang off the same parent.
func (s *CommentService) CreateReply(ctx context.Context, userID uint, parentPublicID, content string) (*Comment, error) {
	parent, err := s.commentrepo.FindByPublicID(ctx, parentPublicID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	parentID := parent.ID
	if parent.ParentID != nil {
		parentID = *parent.ParentID
	}

	publicID, err := idgen.GenerateSecureID("cmt", 16)
	if err != nil {
		return nil, err
	}
	c := &Comment{
		PublicID:  publicID,
		EpisodeID: parent.EpisodeID,
		UserID:    userID,
		ParentID:  &parentID,
		Content:   strings.TrimSpace(content),
	}
	if err := s.commentrepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, userID uint, publicID, content string) (*Comment, error) {
	c, err := s.ownedComment(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	c.Content = strings.TrimSpace(content)
	if err := s.commentrepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID uint, publicID string) error {
	c, err := s.ownedComment(ctx, userID, publicID)
	if err != nil {
		return err
	}
	return s.commentrepo.Delete(ctx, c)
}

// ListByEpisode clamps the requested paging and echoes the values it applied,
// so callers report what was served rather than what was asked for.
func (s *CommentService) ListByEpisode(ctx context.Context, episodeID string, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	items, total, err := s.commentrepo.ListByEpisode(ctx, episodeID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *CommentService) ListReplies(ctx context.Context, parentPublicID string) ([]*Comment, error) {
	parent, err := s.commentrepo.FindByPublicID(ctx, parentPublicID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	return s.commentrepo.ListReplies(ctx, parent.ID)
}

func (s *CommentService) ToggleLike(ctx context.Context, userID uint, publicID string) (bool, int64, error) {
	c, err := s.commentrepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return false, 0, err
	}
	if c == nil {
		return false, 0, ErrNotFound
	}
	return s.commentrepo.ToggleLike(ctx, c.ID, userID)
}

func (s *CommentService) ownedComment(ctx context.Context, userID uint, publicID string) (*Comment, error) {
	c, err := s.commentrepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if c.UserID != userID {
		return nil, ErrNotOwner
	}
	return c, nil
}

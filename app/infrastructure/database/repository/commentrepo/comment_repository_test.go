package commentrepo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "animehi.app/anime-api-gateway/app/domain/comment"
	"animehi.app/anime-api-gateway/app/infrastructure/database/dbschema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&dbschema.User{}, &dbschema.Comment{}, &dbschema.CommentLike{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, publicID string, anilistID int) *dbschema.User {
	t.Helper()
	u := &dbschema.User{
		PublicID:  publicID,
		AnilistID: anilistID,
		Name:      publicID,
		Enabled:   true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestDeleteRemovesRepliesAndTheirLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentGormRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "usr_author", 1)
	liker := createTestUser(t, db, "usr_liker", 2)

	root := &domain.Comment{PublicID: "cmt_root", EpisodeID: "ep-1", UserID: author.ID, Content: "root"}
	require.NoError(t, repo.Create(ctx, root))

	reply := &domain.Comment{PublicID: "cmt_reply", EpisodeID: "ep-1", UserID: liker.ID, ParentID: &root.ID, Content: "reply"}
	require.NoError(t, repo.Create(ctx, reply))

	_, _, err := repo.ToggleLike(ctx, root.ID, liker.ID)
	require.NoError(t, err)
	_, _, err = repo.ToggleLike(ctx, reply.ID, author.ID)
	require.NoError(t, err)

	// A sibling thread with its own like must survive the cascade.
	other := &domain.Comment{PublicID: "cmt_other", EpisodeID: "ep-1", UserID: author.ID, Content: "other"}
	require.NoError(t, repo.Create(ctx, other))
	_, _, err = repo.ToggleLike(ctx, other.ID, liker.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, root))

	var comments int64
	require.NoError(t, db.Model(&dbschema.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(1), comments)

	var likes []dbschema.CommentLike
	require.NoError(t, db.Find(&likes).Error)
	require.Len(t, likes, 1)
	assert.Equal(t, other.ID, likes[0].CommentID)
}

func TestListByEpisodePagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentGormRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "usr_author", 1)
	for i := 0; i < 3; i++ {
		c := &domain.Comment{
			PublicID:  "cmt_" + string(rune('a'+i)),
			EpisodeID: "ep-1",
			UserID:    author.ID,
			Content:   "comment",
		}
		require.NoError(t, repo.Create(ctx, c))
	}

	page1, total, err := repo.ListByEpisode(ctx, "ep-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page1, 2)

	page2, total, err := repo.ListByEpisode(ctx, "ep-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page2, 1)
}

package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

func TestBookmarksScenario(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	owner := newTestUser(t, gormDB, "test@gmail.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	created, err := s.Create(ctx, owner.ID, BookmarkCreate{
		Title:       "Create",
		Description: strPtr("Create Description"),
		Link:        "https://create.description.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)

	list, err := s.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := s.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Create", got.Title)
	assert.Equal(t, "Create Description", *got.Description)
	assert.Equal(t, "https://create.description.com", got.Link)

	edited, err := s.Edit(ctx, owner.ID, created.ID, BookmarkPatch{
		Title:       strPtr("Edit"),
		Description: strPtr("Edit Description"),
		Link:        strPtr("https://edit.description.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Edit", edited.Title)
	assert.Equal(t, "Edit Description", *edited.Description)
	assert.Equal(t, "https://edit.description.com", edited.Link)
	assert.Equal(t, owner.ID, edited.UserID)

	require.NoError(t, s.Delete(ctx, owner.ID, created.ID))

	list, err = s.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestBookmarksList(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	alice := newTestUser(t, gormDB, "alice@example.com")
	bob := newTestUser(t, gormDB, "bob@example.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	t.Run("empty", func(t *testing.T) {
		list, err := s.List(ctx, alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	var aliceIDs []uint64
	for _, title := range []string{"a1", "a2", "a3"} {
		b, err := s.Create(ctx, alice.ID, BookmarkCreate{Title: title, Link: "https://a.example.com"})
		require.NoError(t, err)
		aliceIDs = append(aliceIDs, b.ID)
	}
	_, err := s.Create(ctx, bob.ID, BookmarkCreate{Title: "b1", Link: "https://b.example.com"})
	require.NoError(t, err)

	t.Run("only own bookmarks in id order", func(t *testing.T) {
		list, err := s.List(ctx, alice.ID)
		require.NoError(t, err)

		gotIDs := make([]uint64, len(list))
		for i := range list {
			gotIDs[i] = list[i].ID
			assert.Equal(t, alice.ID, list[i].UserID)
		}
		assert.Equal(t, aliceIDs, gotIDs)
		assert.Equal(t, "a1", list[0].Title)
		assert.Nil(t, list[0].Description)
		assert.False(t, list[0].CreatedAt.IsZero())
	})

	t.Run("other owner", func(t *testing.T) {
		list, err := s.List(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "b1", list[0].Title)
	})
}

func TestBookmarksForeignOwnerLooksMissing(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	alice := newTestUser(t, gormDB, "alice@example.com")
	bob := newTestUser(t, gormDB, "bob@example.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	b, err := s.Create(ctx, alice.ID, BookmarkCreate{Title: "mine", Link: "https://a.example.com"})
	require.NoError(t, err)
	const missingID = 9999

	// math.MaxUint64 does not fit the signed id column
	for _, id := range []uint64{b.ID, missingID, math.MaxUint64} {
		got, err := s.Get(ctx, bob.ID, id)
		assert.NoError(t, err)
		assert.Nil(t, got)

		_, err = s.Edit(ctx, bob.ID, id, BookmarkPatch{Title: strPtr("stolen")})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)

		err = s.Delete(ctx, bob.ID, id)
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	}

	stored := db.Bookmark{}
	require.NoError(t, gormDB.First(&stored, b.ID).Error)
	assert.Equal(t, "mine", stored.Title)
	assert.Equal(t, alice.ID, stored.UserID)
}

func TestBookmarksEdit(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	owner := newTestUser(t, gormDB, "owner@example.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	newBookmark := func(t *testing.T) *db.Bookmark {
		b, err := s.Create(ctx, owner.ID, BookmarkCreate{
			Title:       "title",
			Description: strPtr("description"),
			Link:        "https://link.example.com",
		})
		require.NoError(t, err)
		return b
	}

	t.Run("title only keeps other fields", func(t *testing.T) {
		b := newBookmark(t)

		edited, err := s.Edit(ctx, owner.ID, b.ID, BookmarkPatch{Title: strPtr("new title")})
		require.NoError(t, err)
		assert.Equal(t, "new title", edited.Title)
		assert.Equal(t, "description", *edited.Description)
		assert.Equal(t, "https://link.example.com", edited.Link)
		assert.Equal(t, owner.ID, edited.UserID)
		assert.Equal(t, b.CreatedAt.Unix(), edited.CreatedAt.Unix())
	})

	t.Run("description only", func(t *testing.T) {
		b := newBookmark(t)

		edited, err := s.Edit(ctx, owner.ID, b.ID, BookmarkPatch{Description: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "title", edited.Title)
		assert.Equal(t, "", *edited.Description)
	})

	t.Run("empty patch", func(t *testing.T) {
		b := newBookmark(t)

		edited, err := s.Edit(ctx, owner.ID, b.ID, BookmarkPatch{})
		require.NoError(t, err)
		assert.Equal(t, b.ID, edited.ID)
		assert.Equal(t, "title", edited.Title)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Edit(ctx, owner.ID, 9999, BookmarkPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	})
}

func TestBookmarksDelete(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	owner := newTestUser(t, gormDB, "owner@example.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	keep, err := s.Create(ctx, owner.ID, BookmarkCreate{Title: "keep", Link: "https://keep.example.com"})
	require.NoError(t, err)
	drop, err := s.Create(ctx, owner.ID, BookmarkCreate{Title: "drop", Link: "https://drop.example.com"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, owner.ID, drop.ID))

	got, err := s.Get(ctx, owner.ID, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := s.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	t.Run("second delete reports not found", func(t *testing.T) {
		err := s.Delete(ctx, owner.ID, drop.ID)
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		next, err := s.Create(ctx, owner.ID, BookmarkCreate{Title: "next", Link: "https://next.example.com"})
		require.NoError(t, err)
		assert.Greater(t, next.ID, drop.ID)
	})
}

func TestBookmarksCreateConflict(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	owner := newTestUser(t, gormDB, "owner@example.com")
	s := NewBookmarks(gormDB, zap.NewNop().Sugar())

	in := BookmarkCreate{Title: "same", Link: "https://same.example.com"}

	t.Run("duplicates are allowed by the default schema", func(t *testing.T) {
		_, err := s.Create(ctx, owner.ID, in)
		require.NoError(t, err)
		_, err = s.Create(ctx, owner.ID, in)
		require.NoError(t, err)
	})

	require.NoError(t, gormDB.Exec("DELETE FROM bookmarks").Error)
	require.NoError(t, gormDB.Exec("CREATE UNIQUE INDEX uidx_bookmarks_user_link ON bookmarks (user_id, link)").Error)

	_, err := s.Create(ctx, owner.ID, in)
	require.NoError(t, err)

	_, err = s.Create(ctx, owner.ID, in)
	assert.ErrorIs(t, err, ErrBookmarkConflict)

	list, err := s.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBookmarksCreateUnknownOwner(t *testing.T) {
	s := NewBookmarks(newTestDB(t), zap.NewNop().Sugar())

	_, err := s.Create(context.Background(), 4242, BookmarkCreate{Title: "t", Link: "l"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBookmarkConflict)
}

package service

import (
	"context"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrBookmarkConflict can only fire once a unique constraint exists on bookmarks.
	// The shipped schema declares none.
	ErrBookmarkConflict = errors.New("bookmark conflicts with an existing one")
)

type (
	BookmarkCreate struct {
		Title       string
		Description *string
		Link        string
	}

	// BookmarkPatch holds the fields to change; nil means keep the stored value.
	BookmarkPatch struct {
		Title       *string
		Description *string
		Link        *string
	}

	Bookmarks struct {
		db     *gorm.DB
		logger *zap.SugaredLogger
	}
)

func NewBookmarks(db *gorm.DB, l *zap.SugaredLogger) *Bookmarks {
	return &Bookmarks{
		db:     db,
		logger: l,
	}
}

func (s *Bookmarks) List(ctx context.Context, ownerID uint64) ([]db.Bookmark, error) {
	sql, args, err := squirrel.
		Select("id", "created_at", "updated_at", "title", "description", "link", "user_id").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	bookmarks := make([]db.Bookmark, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&bookmarks)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}

	return bookmarks, nil
}

// Get returns nil without an error when the bookmark is absent or owned by someone else.
func (s *Bookmarks) Get(ctx context.Context, ownerID, bookmarkID uint64) (*db.Bookmark, error) {
	model, err := s.owned(ctx, ownerID, bookmarkID)
	if errors.Is(err, ErrBookmarkNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (s *Bookmarks) Create(ctx context.Context, ownerID uint64, in BookmarkCreate) (*db.Bookmark, error) {
	model := db.Bookmark{
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		UserID:      ownerID,
	}

	res := s.db.WithContext(ctx).Create(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrBookmarkConflict
		}
		return nil, errors.Wrap(res.Error, "create model")
	}

	return &model, nil
}

func (s *Bookmarks) Edit(ctx context.Context, ownerID, bookmarkID uint64, patch BookmarkPatch) (*db.Bookmark, error) {
	model, err := s.owned(ctx, ownerID, bookmarkID)
	if err != nil {
		return nil, err
	}

	updates := patch.columns()
	if len(updates) == 0 {
		return model, nil
	}

	res := s.db.WithContext(ctx).Model(&db.Bookmark{}).Where("id = ?", bookmarkID).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update model")
	}
	// deleted between the lookup and the update
	if res.RowsAffected == 0 {
		return nil, ErrBookmarkNotFound
	}

	updated := db.Bookmark{}
	res = s.db.WithContext(ctx).First(&updated, bookmarkID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, errors.Wrap(res.Error, "get model")
	}

	return &updated, nil
}

func (s *Bookmarks) Delete(ctx context.Context, ownerID, bookmarkID uint64) error {
	if _, err := s.owned(ctx, ownerID, bookmarkID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&db.Bookmark{}, bookmarkID)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete model")
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// owned looks the bookmark up by primary key only and compares the owner afterwards,
// so a foreign bookmark and a missing one produce the same error.
func (s *Bookmarks) owned(ctx context.Context, ownerID, bookmarkID uint64) (*db.Bookmark, error) {
	// ids are stored as signed 64-bit integers
	if bookmarkID > math.MaxInt64 {
		return nil, ErrBookmarkNotFound
	}

	model := db.Bookmark{}
	res := s.db.WithContext(ctx).First(&model, bookmarkID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, errors.Wrap(res.Error, "get model")
	}

	if model.UserID != ownerID {
		s.logger.Debugw("bookmark owner mismatch", "bookmark_id", bookmarkID, "owner_id", ownerID)
		return nil, ErrBookmarkNotFound
	}

	return &model, nil
}

func (p BookmarkPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Link != nil {
		updates["link"] = *p.Link
	}
	return updates
}

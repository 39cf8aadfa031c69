package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

type (
	UserPatch struct {
		Email     *string
		FirstName *string
		LastName  *string
	}

	Users struct {
		db *gorm.DB
	}
)

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		db: db,
	}
}

func (s *Users) Get(ctx context.Context, userID uint64) (*db.User, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).First(&user, userID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(res.Error, "get user")
	}
	return &user, nil
}

func (s *Users) Edit(ctx context.Context, userID uint64, patch UserPatch) (*db.User, error) {
	updates := map[string]interface{}{}
	if patch.Email != nil {
		updates["email"] = normalizeEmail(*patch.Email)
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}

	if len(updates) != 0 {
		res := s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return nil, ErrCredentialsTaken
			}
			return nil, errors.Wrap(res.Error, "update user")
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	return s.Get(ctx, userID)
}

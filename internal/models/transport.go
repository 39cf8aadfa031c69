package models

import (
	"time"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

type AuthReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthResp struct {
	AccessToken string `json:"access_token"`
}

type UserReq struct {
	Email     *string `json:"email,omitempty" validate:"omitnil,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type UserResp struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookmarkCreateReq struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Link        string  `json:"link" validate:"required"`
}

type BookmarkEditReq struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty" validate:"omitnil,min=1"`
}

type BookmarkResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	UserID      uint64    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ErrorResp struct {
	Message string `json:"message"`
}

func NewUserResp(u *db.User) UserResp {
	return UserResp{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewBookmarkResp(b *db.Bookmark) BookmarkResp {
	return BookmarkResp{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		UserID:      b.UserID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBookmarkRespList(bookmarks []db.Bookmark) []BookmarkResp {
	resp := make([]BookmarkResp, len(bookmarks))
	for i := range bookmarks {
		resp[i] = NewBookmarkResp(&bookmarks[i])
	}
	return resp
}

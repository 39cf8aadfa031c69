package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrUserNotFound         = errors.New("user not found")
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrCredentialsIncorrect = errors.New("credentials incorrect")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = errors.New("password too long")
)

type Auth struct {
	db       *gorm.DB
	tokens   *auth.Tokens
	denylist auth.Denylist
	logger   *zap.SugaredLogger
	cost     int
}

func NewAuth(db *gorm.DB, tokens *auth.Tokens, denylist auth.Denylist, l *zap.SugaredLogger) *Auth {
	return &Auth{
		db:       db,
		tokens:   tokens,
		denylist: denylist,
		logger:   l,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *Auth) Signup(ctx context.Context, email, pass string) (string, error) {
	hash, err := s.bcryptGen(pass)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", errors.Wrap(err, "bcryptGen")
	}

	user := db.User{
		Email: normalizeEmail(email),
		Hash:  hash,
	}
	res := s.db.WithContext(ctx).Create(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return "", ErrCredentialsTaken
		}
		return "", errors.Wrap(res.Error, "create user")
	}

	return s.tokens.Issue(user.ID)
}

func (s *Auth) Signin(ctx context.Context, email, pass string) (string, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", errors.Wrap(res.Error, "find user")
	}

	if err := s.bcryptCheck(user.Hash, pass); err != nil {
		return "", ErrCredentialsIncorrect
	}

	return s.tokens.Issue(user.ID)
}

func (s *Auth) Signout(ctx context.Context, token string) error {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return ErrUnauthenticated
	}
	if _, ok := s.denylist.(auth.NopDenylist); ok {
		s.logger.Warnw("token revocation disabled, token stays valid until expiry",
			"user_id", identity.UserID,
			"expires_at", identity.ExpiresAt,
		)
	}
	return s.denylist.Revoke(ctx, identity.TokenID, identity.ExpiresAt)
}

// Authenticate resolves a bearer token to its user. Every failure, including a
// user deleted after the token was issued, is reported as ErrUnauthenticated.
func (s *Auth) Authenticate(ctx context.Context, token string) (*db.User, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debugw("token rejected", "error", err)
		return nil, ErrUnauthenticated
	}

	revoked, err := s.denylist.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return nil, errors.Wrap(err, "denylist")
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	user := db.User{}
	res := s.db.WithContext(ctx).First(&user, identity.UserID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, errors.Wrap(res.Error, "find user")
	}

	return &user, nil
}

func (s *Auth) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.cost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *Auth) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		e         *echo.Echo
		bookmarks *service.Bookmarks
		users     *service.Users
		auth      *service.Auth
		logger    *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, bookmarks *service.Bookmarks, users *service.Users, authService *service.Auth, logger *zap.SugaredLogger) *HTTPServer {
	instance := New(bookmarks, users, authService, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := instance.e.Start(cfg.HTTPAddr()); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("shutting down the server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return instance.e.Shutdown(ctx)
		},
	})

	return instance
}

// New builds the router without binding a listener.
func New(bookmarks *service.Bookmarks, users *service.Users, authService *service.Auth, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		e:         e,
		bookmarks: bookmarks,
		users:     users,
		auth:      authService,
		logger:    logger,
	}

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(BodyLogger(logger))

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	authG := e.Group("/auth")
	authG.POST("/signup", instance.Signup)
	authG.POST("/signin", instance.Signin)
	authG.POST("/signout", instance.Signout, instance.AuthMiddleware)

	userG := e.Group("/users", instance.AuthMiddleware)
	userG.GET("/me", instance.UserMe)
	userG.PATCH("", instance.UserEdit)

	bookmarkG := e.Group("/bookmarks", instance.AuthMiddleware)
	bookmarkG.GET("", instance.BookmarkList)
	bookmarkG.GET("/:id", instance.BookmarkGet)
	bookmarkG.POST("", instance.BookmarkCreate)
	bookmarkG.PATCH("/:id", instance.BookmarkUpdate)
	bookmarkG.DELETE("/:id", instance.BookmarkDelete)

	return &instance
}

func (s *HTTPServer) Handler() http.Handler {
	return s.e
}

func (s *HTTPServer) Signup(c echo.Context) error {
	req := models.AuthReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.auth.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.AuthResp{AccessToken: token})
}

func (s *HTTPServer) Signin(c echo.Context) error {
	req := models.AuthReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.auth.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AuthResp{AccessToken: token})
}

func (s *HTTPServer) Signout(c echo.Context) error {
	token, _ := c.Get(tokenKey).(string)
	if err := s.auth.Signout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) UserMe(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserEdit(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.users.Edit(c.Request().Context(), user.ID, service.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewUserResp(updated))
}

func (s *HTTPServer) BookmarkList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	bookmarks, err := s.bookmarks.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewBookmarkRespList(bookmarks))
}

func (s *HTTPServer) BookmarkGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	bookmark, err := s.bookmarks.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, models.NewBookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.BookmarkCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	bookmark, err := s.bookmarks.Create(c.Request().Context(), user.ID, service.BookmarkCreate{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.NewBookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.BookmarkEditReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	bookmark, err := s.bookmarks.Edit(c.Request().Context(), user.ID, id, service.BookmarkPatch{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewBookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.bookmarks.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		user, err := s.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		return next(c)
	}
}

// ErrorHandler maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a bare 500.
func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
	case errors.Is(err, service.ErrUnauthenticated):
		he = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrBookmarkNotFound):
		he = echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
	case errors.Is(err, service.ErrUserNotFound):
		he = echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrBookmarkConflict):
		he = echo.NewHTTPError(http.StatusForbidden, "Bookmark already exists")
	case errors.Is(err, service.ErrCredentialsTaken):
		he = echo.NewHTTPError(http.StatusForbidden, "Credentials taken")
	case errors.Is(err, service.ErrCredentialsIncorrect):
		he = echo.NewHTTPError(http.StatusForbidden, "Credentials incorrect")
	case errors.Is(err, service.ErrPasswordTooLong):
		he = echo.NewHTTPError(http.StatusBadRequest, "Password too long")
	default:
		s.logger.Errorw("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
		he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	msg, ok := he.Message.(string)
	if !ok {
		msg = http.StatusText(he.Code)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, models.ErrorResp{Message: msg})
	}
	if err != nil {
		s.logger.Errorw("write error response", "error", err)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get(userKey).(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}

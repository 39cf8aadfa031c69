package rpc

import (
	"context"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
)

const authorizationKey = "authorization"

type (
	userCtxKey struct{}

	BookmarkerServerImpl struct {
		bookmarks *service.Bookmarks
		auth      *service.Auth
		validate  *validator.Validate
		logger    *zap.SugaredLogger
	}
)

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, bookmarks *service.Bookmarks, authService *service.Auth, logger *zap.SugaredLogger) *BookmarkerServerImpl {
	instance := New(bookmarks, authService, logger)
	grpcServer := instance.NewServer()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr())
			if err != nil {
				return errors.Wrap(err, "listen grpc")
			}

			go func() {
				if err := grpcServer.Serve(lis); err != nil {
					logger.Fatalw("failed to serve grpc", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			grpcServer.GracefulStop()
			return nil
		},
	})

	return instance
}

func New(bookmarks *service.Bookmarks, authService *service.Auth, logger *zap.SugaredLogger) *BookmarkerServerImpl {
	return &BookmarkerServerImpl{
		bookmarks: bookmarks,
		auth:      authService,
		validate:  validator.New(),
		logger:    logger,
	}
}

// NewServer returns a grpc.Server with the bookmarker service registered
// behind the logging and auth interceptors. Server reflection is enabled so
// grpcurl can discover the service.
func (s *BookmarkerServerImpl) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.logInterceptor, s.authInterceptor))
	grpcServer := grpc.NewServer(opts...)
	RegisterBookmarkerServer(grpcServer, s)
	reflection.Register(grpcServer)
	return grpcServer
}

func (s *BookmarkerServerImpl) ListBookmarks(ctx context.Context, _ *ListBookmarksRequest) (*ListBookmarksResponse, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.bookmarks.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ListBookmarksResponse{Items: models.NewBookmarkRespList(bookmarks)}, nil
}

func (s *BookmarkerServerImpl) GetBookmark(ctx context.Context, req *GetBookmarkRequest) (*GetBookmarkResponse, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bookmark, err := s.bookmarks.Get(ctx, user.ID, req.ID)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return &GetBookmarkResponse{}, nil
	}
	resp := models.NewBookmarkResp(bookmark)
	return &GetBookmarkResponse{Item: &resp}, nil
}

func (s *BookmarkerServerImpl) CreateBookmark(ctx context.Context, req *CreateBookmarkRequest) (*Bookmark, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	bookmark, err := s.bookmarks.Create(ctx, user.ID, service.BookmarkCreate{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return nil, err
	}
	resp := Bookmark(models.NewBookmarkResp(bookmark))
	return &resp, nil
}

func (s *BookmarkerServerImpl) EditBookmark(ctx context.Context, req *EditBookmarkRequest) (*Bookmark, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	bookmark, err := s.bookmarks.Edit(ctx, user.ID, req.ID, service.BookmarkPatch{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return nil, err
	}
	resp := Bookmark(models.NewBookmarkResp(bookmark))
	return &resp, nil
}

func (s *BookmarkerServerImpl) DeleteBookmark(ctx context.Context, req *DeleteBookmarkRequest) (*Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.bookmarks.Delete(ctx, user.ID, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *BookmarkerServerImpl) authInterceptor(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}
	token := auth.BearerToken(values[0])
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}

	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return handler(context.WithValue(ctx, userCtxKey{}, user), req)
}

// logInterceptor converts service errors into status errors and logs the call.
func (s *BookmarkerServerImpl) logInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	err = s.toStatus(info.FullMethod, err)

	s.logger.Infow("grpc_request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

func (s *BookmarkerServerImpl) toStatus(method string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "Unauthorized")
	case errors.Is(err, service.ErrBookmarkNotFound):
		return status.Error(codes.NotFound, "Bookmark not found")
	case errors.Is(err, service.ErrBookmarkConflict):
		return status.Error(codes.PermissionDenied, "Bookmark already exists")
	default:
		s.logger.Errorw("grpc request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "Internal Server Error")
	}
}

func userFromContext(ctx context.Context) (*db.User, error) {
	user, ok := ctx.Value(userCtxKey{}).(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

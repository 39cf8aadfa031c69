package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

const ServiceName = "bookmarker.Bookmarker"

// Requests and responses travel as the protobuf messages declared in
// api/bookmarker.proto.
type (
	ListBookmarksRequest struct{}

	ListBookmarksResponse struct {
		Items []models.BookmarkResp
	}

	GetBookmarkRequest struct {
		ID uint64
	}

	// GetBookmarkResponse carries a nil Item when the bookmark is missing or
	// belongs to someone else.
	GetBookmarkResponse struct {
		Item *models.BookmarkResp
	}

	CreateBookmarkRequest struct {
		models.BookmarkCreateReq
	}

	EditBookmarkRequest struct {
		ID uint64
		models.BookmarkEditReq
	}

	DeleteBookmarkRequest struct {
		ID uint64
	}

	Bookmark models.BookmarkResp

	// Empty is google.protobuf.Empty on the wire.
	Empty struct{}

	BookmarkerServer interface {
		ListBookmarks(context.Context, *ListBookmarksRequest) (*ListBookmarksResponse, error)
		GetBookmark(context.Context, *GetBookmarkRequest) (*GetBookmarkResponse, error)
		CreateBookmark(context.Context, *CreateBookmarkRequest) (*Bookmark, error)
		EditBookmark(context.Context, *EditBookmarkRequest) (*Bookmark, error)
		DeleteBookmark(context.Context, *DeleteBookmarkRequest) (*Empty, error)
	}
)

var bookmarkerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookmarkerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListBookmarks", BookmarkerServer.ListBookmarks),
		unary("GetBookmark", BookmarkerServer.GetBookmark),
		unary("CreateBookmark", BookmarkerServer.CreateBookmark),
		unary("EditBookmark", BookmarkerServer.EditBookmark),
		unary("DeleteBookmark", BookmarkerServer.DeleteBookmark),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookmarker.proto",
}

func RegisterBookmarkerServer(s grpc.ServiceRegistrar, srv BookmarkerServer) {
	s.RegisterService(&bookmarkerServiceDesc, srv)
}

func unary[Req, Resp any, PReq interface {
	*Req
	wireMessage
}, PResp interface {
	*Resp
	wireMessage
}](name string, call func(BookmarkerServer, context.Context, PReq) (PResp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := PReq(new(Req))
			wire := dynamicpb.NewMessage(in.descriptor())
			if err := dec(wire); err != nil {
				return nil, err
			}
			in.fromProto(wire)

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				out, err := call(srv.(BookmarkerServer), ctx, req.(PReq))
				if err != nil {
					return nil, err
				}
				return out.toProto(), nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

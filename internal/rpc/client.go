package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/dynamicpb"
)

type (
	BookmarkerClient interface {
		ListBookmarks(ctx context.Context, in *ListBookmarksRequest, opts ...grpc.CallOption) (*ListBookmarksResponse, error)
		GetBookmark(ctx context.Context, in *GetBookmarkRequest, opts ...grpc.CallOption) (*GetBookmarkResponse, error)
		CreateBookmark(ctx context.Context, in *CreateBookmarkRequest, opts ...grpc.CallOption) (*Bookmark, error)
		EditBookmark(ctx context.Context, in *EditBookmarkRequest, opts ...grpc.CallOption) (*Bookmark, error)
		DeleteBookmark(ctx context.Context, in *DeleteBookmarkRequest, opts ...grpc.CallOption) (*Empty, error)
	}

	bookmarkerClient struct {
		cc grpc.ClientConnInterface
	}
)

func NewBookmarkerClient(cc grpc.ClientConnInterface) BookmarkerClient {
	return &bookmarkerClient{cc: cc}
}

// WithToken attaches an access token to outgoing calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
}

func (c *bookmarkerClient) ListBookmarks(ctx context.Context, in *ListBookmarksRequest, opts ...grpc.CallOption) (*ListBookmarksResponse, error) {
	out := new(ListBookmarksResponse)
	if err := c.invoke(ctx, "ListBookmarks", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookmarkerClient) GetBookmark(ctx context.Context, in *GetBookmarkRequest, opts ...grpc.CallOption) (*GetBookmarkResponse, error) {
	out := new(GetBookmarkResponse)
	if err := c.invoke(ctx, "GetBookmark", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookmarkerClient) CreateBookmark(ctx context.Context, in *CreateBookmarkRequest, opts ...grpc.CallOption) (*Bookmark, error) {
	out := new(Bookmark)
	if err := c.invoke(ctx, "CreateBookmark", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookmarkerClient) EditBookmark(ctx context.Context, in *EditBookmarkRequest, opts ...grpc.CallOption) (*Bookmark, error) {
	out := new(Bookmark)
	if err := c.invoke(ctx, "EditBookmark", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookmarkerClient) DeleteBookmark(ctx context.Context, in *DeleteBookmarkRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "DeleteBookmark", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookmarkerClient) invoke(ctx context.Context, method string, in, out wireMessage, opts []grpc.CallOption) error {
	reply := dynamicpb.NewMessage(out.descriptor())
	if err := c.cc.Invoke(ctx, fullMethod(method), in.toProto(), reply, opts...); err != nil {
		return err
	}
	out.fromProto(reply)
	return nil
}

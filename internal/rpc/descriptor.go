package rpc

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// The descriptor mirrors api/bookmarker.proto and is registered in
// protoregistry.GlobalFiles so server reflection can serve it.
var (
	bookmarkerFile = mustRegisterFile(bookmarkerFileProto())

	bookmarkDesc              = bookmarkerFile.Messages().ByName("Bookmark")
	listBookmarksRequestDesc  = bookmarkerFile.Messages().ByName("ListBookmarksRequest")
	listBookmarksResponseDesc = bookmarkerFile.Messages().ByName("ListBookmarksResponse")
	getBookmarkRequestDesc    = bookmarkerFile.Messages().ByName("GetBookmarkRequest")
	getBookmarkResponseDesc   = bookmarkerFile.Messages().ByName("GetBookmarkResponse")
	createBookmarkRequestDesc = bookmarkerFile.Messages().ByName("CreateBookmarkRequest")
	editBookmarkRequestDesc   = bookmarkerFile.Messages().ByName("EditBookmarkRequest")
	deleteBookmarkRequestDesc = bookmarkerFile.Messages().ByName("DeleteBookmarkRequest")
)

func mustRegisterFile(fdp *descriptorpb.FileDescriptorProto) protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
	return fd
}

func bookmarkerFileProto() *descriptorpb.FileDescriptorProto {
	const (
		timestamp = ".google.protobuf.Timestamp"
		empty     = ".google.protobuf.Empty"
	)

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("bookmarker.proto"),
		Package: proto.String("bookmarker"),
		Dependency: []string{
			emptypb.File_google_protobuf_empty_proto.Path(),
			timestamppb.File_google_protobuf_timestamp_proto.Path(),
		},
		Syntax: proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/Rogue-Bear-Innovations/bookmarker-back/internal/rpc"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message("Bookmark",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				scalar("title", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				optional("description", 3),
				scalar("link", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("user_id", 5, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				nested("created_at", 6, timestamp),
				nested("updated_at", 7, timestamp),
			),
			message("ListBookmarksRequest"),
			message("ListBookmarksResponse",
				repeated("items", 1, ".bookmarker.Bookmark"),
			),
			message("GetBookmarkRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
			),
			message("GetBookmarkResponse",
				nested("item", 1, ".bookmarker.Bookmark"),
			),
			message("CreateBookmarkRequest",
				scalar("title", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				optional("description", 2),
				scalar("link", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("EditBookmarkRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				optional("title", 2),
				optional("description", 3),
				optional("link", 4),
			),
			message("DeleteBookmarkRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("Bookmarker"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("ListBookmarks", ".bookmarker.ListBookmarksRequest", ".bookmarker.ListBookmarksResponse"),
				method("GetBookmark", ".bookmarker.GetBookmarkRequest", ".bookmarker.GetBookmarkResponse"),
				method("CreateBookmark", ".bookmarker.CreateBookmarkRequest", ".bookmarker.Bookmark"),
				method("EditBookmark", ".bookmarker.EditBookmarkRequest", ".bookmarker.Bookmark"),
				method("DeleteBookmark", ".bookmarker.DeleteBookmarkRequest", empty),
			},
		}},
	}
}

// message wraps every proto3 optional field in its own synthetic oneof.
func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	msg := &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
	for _, f := range fields {
		if !f.GetProto3Optional() {
			continue
		}
		f.OneofIndex = proto.Int32(int32(len(msg.OneofDecl)))
		msg.OneofDecl = append(msg.OneofDecl, &descriptorpb.OneofDescriptorProto{
			Name: proto.String("_" + f.GetName()),
		})
	}
	return msg
}

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func optional(name string, number int32) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_STRING)
	f.Proto3Optional = proto.Bool(true)
	return f
}

func nested(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

func repeated(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := nested(name, number, typeName)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func method(name, input, output string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(input),
		OutputType: proto.String(output),
	}
}

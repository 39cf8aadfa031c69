package rpc

import (
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

// wireMessage converts a request or response to and from its protobuf form.
type wireMessage interface {
	descriptor() protoreflect.MessageDescriptor
	toProto() proto.Message
	fromProto(protoreflect.Message)
}

func (*ListBookmarksRequest) descriptor() protoreflect.MessageDescriptor {
	return listBookmarksRequestDesc
}

func (*ListBookmarksRequest) toProto() proto.Message {
	return dynamicpb.NewMessage(listBookmarksRequestDesc)
}

func (*ListBookmarksRequest) fromProto(protoreflect.Message) {}

func (*ListBookmarksResponse) descriptor() protoreflect.MessageDescriptor {
	return listBookmarksResponseDesc
}

func (r *ListBookmarksResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(listBookmarksResponseDesc)
	list := m.Mutable(fieldOf(m, "items")).List()
	for i := range r.Items {
		el := list.NewElement()
		setBookmark(el.Message(), &r.Items[i])
		list.Append(el)
	}
	return m
}

func (r *ListBookmarksResponse) fromProto(m protoreflect.Message) {
	list := m.Get(fieldOf(m, "items")).List()
	r.Items = make([]models.BookmarkResp, list.Len())
	for i := 0; i < list.Len(); i++ {
		r.Items[i] = getBookmark(list.Get(i).Message())
	}
}

func (*GetBookmarkRequest) descriptor() protoreflect.MessageDescriptor {
	return getBookmarkRequestDesc
}

func (r *GetBookmarkRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(getBookmarkRequestDesc)
	setUint64(m, "id", r.ID)
	return m
}

func (r *GetBookmarkRequest) fromProto(m protoreflect.Message) {
	r.ID = getUint64(m, "id")
}

func (*GetBookmarkResponse) descriptor() protoreflect.MessageDescriptor {
	return getBookmarkResponseDesc
}

func (r *GetBookmarkResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(getBookmarkResponseDesc)
	if r.Item != nil {
		fd := fieldOf(m, "item")
		v := m.NewField(fd)
		setBookmark(v.Message(), r.Item)
		m.Set(fd, v)
	}
	return m
}

func (r *GetBookmarkResponse) fromProto(m protoreflect.Message) {
	fd := fieldOf(m, "item")
	if !m.Has(fd) {
		r.Item = nil
		return
	}
	item := getBookmark(m.Get(fd).Message())
	r.Item = &item
}

func (*CreateBookmarkRequest) descriptor() protoreflect.MessageDescriptor {
	return createBookmarkRequestDesc
}

func (r *CreateBookmarkRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(createBookmarkRequestDesc)
	setString(m, "title", r.Title)
	setOptionalString(m, "description", r.Description)
	setString(m, "link", r.Link)
	return m
}

func (r *CreateBookmarkRequest) fromProto(m protoreflect.Message) {
	r.Title = getString(m, "title")
	r.Description = getOptionalString(m, "description")
	r.Link = getString(m, "link")
}

func (*EditBookmarkRequest) descriptor() protoreflect.MessageDescriptor {
	return editBookmarkRequestDesc
}

func (r *EditBookmarkRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(editBookmarkRequestDesc)
	setUint64(m, "id", r.ID)
	setOptionalString(m, "title", r.Title)
	setOptionalString(m, "description", r.Description)
	setOptionalString(m, "link", r.Link)
	return m
}

func (r *EditBookmarkRequest) fromProto(m protoreflect.Message) {
	r.ID = getUint64(m, "id")
	r.Title = getOptionalString(m, "title")
	r.Description = getOptionalString(m, "description")
	r.Link = getOptionalString(m, "link")
}

func (*DeleteBookmarkRequest) descriptor() protoreflect.MessageDescriptor {
	return deleteBookmarkRequestDesc
}

func (r *DeleteBookmarkRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(deleteBookmarkRequestDesc)
	setUint64(m, "id", r.ID)
	return m
}

func (r *DeleteBookmarkRequest) fromProto(m protoreflect.Message) {
	r.ID = getUint64(m, "id")
}

func (*Bookmark) descriptor() protoreflect.MessageDescriptor {
	return bookmarkDesc
}

func (b *Bookmark) toProto() proto.Message {
	m := dynamicpb.NewMessage(bookmarkDesc)
	setBookmark(m, (*models.BookmarkResp)(b))
	return m
}

func (b *Bookmark) fromProto(m protoreflect.Message) {
	*b = Bookmark(getBookmark(m))
}

func (*Empty) descriptor() protoreflect.MessageDescriptor {
	return (&emptypb.Empty{}).ProtoReflect().Descriptor()
}

func (*Empty) toProto() proto.Message {
	return &emptypb.Empty{}
}

func (*Empty) fromProto(protoreflect.Message) {}

func setBookmark(m protoreflect.Message, b *models.BookmarkResp) {
	setUint64(m, "id", b.ID)
	setString(m, "title", b.Title)
	setOptionalString(m, "description", b.Description)
	setString(m, "link", b.Link)
	setUint64(m, "user_id", b.UserID)
	setTime(m, "created_at", b.CreatedAt)
	setTime(m, "updated_at", b.UpdatedAt)
}

func getBookmark(m protoreflect.Message) models.BookmarkResp {
	return models.BookmarkResp{
		ID:          getUint64(m, "id"),
		Title:       getString(m, "title"),
		Description: getOptionalString(m, "description"),
		Link:        getString(m, "link"),
		UserID:      getUint64(m, "user_id"),
		CreatedAt:   getTime(m, "created_at"),
		UpdatedAt:   getTime(m, "updated_at"),
	}
}

func fieldOf(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	m.Set(fieldOf(m, name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(fieldOf(m, name)).String()
}

// setOptionalString leaves the field unset for nil, so presence survives
// the round trip.
func setOptionalString(m protoreflect.Message, name protoreflect.Name, v *string) {
	if v != nil {
		setString(m, name, *v)
	}
}

func getOptionalString(m protoreflect.Message, name protoreflect.Name) *string {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return nil
	}
	v := m.Get(fd).String()
	return &v
}

func setUint64(m protoreflect.Message, name protoreflect.Name, v uint64) {
	m.Set(fieldOf(m, name), protoreflect.ValueOfUint64(v))
}

func getUint64(m protoreflect.Message, name protoreflect.Name) uint64 {
	return m.Get(fieldOf(m, name)).Uint()
}

func setTime(m protoreflect.Message, name protoreflect.Name, t time.Time) {
	fd := fieldOf(m, name)
	v := m.NewField(fd)
	ts := v.Message()
	ts.Set(fieldOf(ts, "seconds"), protoreflect.ValueOfInt64(t.Unix()))
	ts.Set(fieldOf(ts, "nanos"), protoreflect.ValueOfInt32(int32(t.Nanosecond())))
	m.Set(fd, v)
}

func getTime(m protoreflect.Message, name protoreflect.Name) time.Time {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return time.Time{}
	}
	ts := m.Get(fd).Message()
	return time.Unix(ts.Get(fieldOf(ts, "seconds")).Int(), ts.Get(fieldOf(ts, "nanos")).Int()).UTC()
}

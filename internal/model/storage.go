package model

import (
	"context"
	"io"
)

// Storage stores uploaded media objects and exposes them by URL.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// MediaKind names the profile image being uploaded.
type MediaKind string

const (
	// MediaKindAvatar is a user avatar.
	MediaKindAvatar MediaKind = "avatar"
	// MediaKindCoverImage is a channel cover image.
	MediaKindCoverImage MediaKind = "cover-image"
)

// LocalFile is an upload staged on local disk.
type LocalFile struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}

// UploadedMedia describes an object stored in media storage.
type UploadedMedia struct {
	Key string
	URL string
}

// MediaUploader uploads staged files and discards stored objects.
type MediaUploader interface {
	Upload(ctx context.Context, kind MediaKind, file LocalFile) (UploadedMedia, error)
	Discard(ctx context.Context, url string)
}

// Package storage uploads CMS images to a public bucket and hands back their URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrUnsupportedType = errors.New("only images can be uploaded")

var storageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

// ImageStore puts an image in the public bucket and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

// CheckType accepts any image/* content type.
func CheckType(contentType string) error {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/") {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return nil
}

// ObjectName returns a random object name that keeps the extension of filename.
func ObjectName(filename string) string {
	name := uuid.New().String()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && ext != "." {
		name += ext
	}
	return name
}

// TitleFromFilename is the part of filename before its first dot.
func TitleFromFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	title, _, _ := strings.Cut(base, ".")
	return title
}

func publicURL(base, object string) string {
	return strings.TrimRight(base, "/") + "/" + object
}

// Options selects and configures a backend.
type Options struct {
	Driver        string
	Bucket        string
	FSDir         string
	PublicBaseURL string
	Endpoint      string
	Region        string
	UseSSL        bool
	AccessKeyID   string
	SecretKey     string
}

// New builds the backend named by opts.Driver: fs, s3 or minio.
func New(ctx context.Context, opts Options) (ImageStore, error) {
	switch opts.Driver {
	case "", "fs":
		return NewFSStore(opts.FSDir, opts.PublicBaseURL)
	case "s3":
		return NewS3Store(ctx, opts)
	case "minio":
		return NewMinioStore(ctx, opts)
	}
	return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
}

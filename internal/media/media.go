// Package media stores listing images and returns the URL they are served from.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for files that are not a supported image type.
var ErrUnsupportedType = errors.New("media: unsupported image type")

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
}

// ObjectKey returns a collision-free key for filename under prefix, keeping
// the lower-cased extension.
func ObjectKey(prefix, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageTypes[ext]; !ok {
		return "", ErrUnsupportedType
	}
	return prefix + uuid.NewString() + ext, nil
}

// ContentType returns the MIME type for a supported image filename.
func ContentType(filename string) string {
	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// localUploader writes images into a directory served by the web shell.
type localUploader struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalUploader creates an uploader writing into dir. Returned URLs are
// baseURL joined with the generated file name.
func NewLocalUploader(dir, baseURL string, logger zerolog.Logger) (Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	return &localUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		logger:  logger.With().Str("component", "local-uploader").Logger(),
	}, nil
}

func (u *localUploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	key, err := ObjectKey("", filename)
	if err != nil {
		return "", err
	}

	path := filepath.Join(u.dir, key)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		u.logger.Error().Err(err).Str("file", path).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	u.logger.Info().Str("file", path).Str("original", filename).Msg("image stored locally")

	return u.baseURL + key, nil
}

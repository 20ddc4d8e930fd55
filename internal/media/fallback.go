package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// fallbackUploader tries the primary uploader first, then the fallback.
type fallbackUploader struct {
	primary  Uploader
	fallback Uploader
	logger   zerolog.Logger
}

// NewFallbackUploader creates an uploader that uses fallback when primary is
// nil or fails. The body is buffered so it can be replayed.
func NewFallbackUploader(primary, fallback Uploader, logger zerolog.Logger) Uploader {
	return &fallbackUploader{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "fallback-uploader").Logger(),
	}
}

func (u *fallbackUploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	if u.primary == nil {
		return u.fallback.Upload(ctx, filename, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload body: %w", err)
	}

	url, err := u.primary.Upload(ctx, filename, bytes.NewReader(data))
	if err == nil {
		return url, nil
	}
	if errors.Is(err, ErrUnsupportedType) {
		return "", err
	}

	u.logger.Warn().
		Err(err).
		Str("file", filename).
		Msg("primary upload failed, falling back to local storage")

	return u.fallback.Upload(ctx, filename, bytes.NewReader(data))
}

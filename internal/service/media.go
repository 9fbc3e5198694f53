package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/metrics"
	"github.com/dtroode/vidtube-server/internal/model"
)

var errEmptyURL = errors.New("storage returned an empty url")

// MediaParams configures the Media service.
type MediaParams struct {
	Timeout      time.Duration
	MaxDimension int
}

// Media normalises staged images and uploads them to object storage.
type Media struct {
	storage      model.Storage
	timeout      time.Duration
	maxDimension int
	metrics      model.MetricsRecorder
	logger       *logger.Logger
}

var _ model.MediaUploader = (*Media)(nil)

func NewMedia(storage model.Storage, params MediaParams, metrics model.MetricsRecorder, logger *logger.Logger) *Media {
	return &Media{
		storage:      storage,
		timeout:      params.Timeout,
		maxDimension: params.MaxDimension,
		metrics:      metrics,
		logger:       logger,
	}
}

// Upload stores the staged file and returns its public URL.
// The local file is removed whatever the outcome.
func (m *Media) Upload(ctx context.Context, kind model.MediaKind, file model.LocalFile) (model.UploadedMedia, error) {
	defer releaseLocal(&file)

	uploaded, err := m.upload(ctx, kind, file)
	if err != nil {
		m.metrics.RecordMediaUpload(kind, metrics.ResultFailure)
		m.logger.Error("Media service: failed to upload file",
			"kind", string(kind),
			"file", file.OriginalName,
			"error", err.Error())
		return model.UploadedMedia{}, apierrors.NewErrUpload(err)
	}

	m.metrics.RecordMediaUpload(kind, metrics.ResultSuccess)
	m.logger.Debug("Media service: file uploaded",
		"kind", string(kind),
		"key", uploaded.Key)

	return uploaded, nil
}

// Discard deletes a previously uploaded object. Failures are logged only.
// URLs that do not point into our storage are ignored.
func (m *Media) Discard(ctx context.Context, url string) {
	key, ok := m.storage.KeyFromURL(url)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.storage.Delete(ctx, key); err != nil {
		m.logger.Warn("Media service: failed to delete object",
			"key", key,
			"error", err.Error())
	}
}

func (m *Media) upload(ctx context.Context, kind model.MediaKind, file model.LocalFile) (model.UploadedMedia, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	src, err := imaging.Open(file.Path, imaging.AutoOrientation(true))
	if err != nil {
		return model.UploadedMedia{}, fmt.Errorf("failed to decode image: %w", err)
	}

	format, ext := outputFormat(file.OriginalName)
	img := m.fit(src)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return model.UploadedMedia{}, fmt.Errorf("failed to encode image: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)
	url, err := m.storage.Upload(ctx, key, &buf, int64(buf.Len()), contentTypes[format])
	if err != nil {
		return model.UploadedMedia{}, fmt.Errorf("failed to store object: %w", err)
	}
	if url == "" {
		return model.UploadedMedia{}, errEmptyURL
	}

	return model.UploadedMedia{Key: key, URL: url}, nil
}

func (m *Media) fit(img image.Image) image.Image {
	if m.maxDimension <= 0 {
		return img
	}

	b := img.Bounds()
	if b.Dx() <= m.maxDimension && b.Dy() <= m.maxDimension {
		return img
	}

	return imaging.Fit(img, m.maxDimension, m.maxDimension, imaging.Lanczos)
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

var extensions = map[imaging.Format]string{
	imaging.JPEG: ".jpg",
	imaging.PNG:  ".png",
	imaging.GIF:  ".gif",
	imaging.TIFF: ".tiff",
	imaging.BMP:  ".bmp",
}

// outputFormat keeps the original format when it is encodable, JPEG otherwise.
func outputFormat(name string) (imaging.Format, string) {
	format, err := imaging.FormatFromExtension(strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")))
	if err != nil {
		format = imaging.JPEG
	}
	return format, extensions[format]
}

// releaseLocal removes staged files. Files already gone are skipped.
func releaseLocal(files ...*model.LocalFile) {
	for _, f := range files {
		if f == nil || f.Path == "" {
			continue
		}
		_ = os.Remove(f.Path)
	}
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"pawstails/internal/logger"
	"pawstails/internal/storage"
)

const (
	ImagesDir   = "images"
	jpegQuality = 85
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageBlobPath maps an uploaded image URL ("/images/x.jpg") to its blob
// path. URLs outside the images directory are not ours to delete.
func ImageBlobPath(imageURL string) (string, bool) {
	p := strings.TrimPrefix(imageURL, "/")
	if !strings.HasPrefix(p, ImagesDir+"/") || strings.Contains(p, "..") {
		return "", false
	}
	return p, true
}

// ImageService stores uploaded article images, shrinking them to maxWidth
// and re-encoding them as JPEG.
type ImageService struct {
	blob     storage.BlobStore
	maxWidth int
	maxBytes int64
}

func NewImageService(blob storage.BlobStore, maxWidth int, maxBytes int64) *ImageService {
	return &ImageService{blob: blob, maxWidth: maxWidth, maxBytes: maxBytes}
}

// Save validates, processes and stores the upload, returning its public URL.
func (s *ImageService) Save(ctx context.Context, src io.Reader, originalName string) (string, error) {
	log := logger.WithCtx(ctx)

	raw, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(raw)) > s.maxBytes {
		log.Warn("Image upload too large", zap.String("name", originalName), zap.Int64("limit", s.maxBytes))
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, s.maxBytes)
	}

	mime := http.DetectContentType(raw)
	if !allowedImageTypes[mime] {
		log.Warn("Image upload rejected", zap.String("name", originalName), zap.String("mime", mime))
		return "", fmt.Errorf("%w: only JPEG, PNG, GIF and WebP are allowed", ErrInvalidImage)
	}

	data, w, h, err := s.process(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	name := uuid.NewString() + ".jpg"
	path := ImagesDir + "/" + name
	if err := s.blob.WriteFile(path, data); err != nil {
		return "", persistErr("write image", err)
	}

	log.Info("Image stored",
		zap.String("original", originalName),
		zap.String("path", path),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("bytes", len(data)),
	)
	return "/" + path, nil
}

func (s *ImageService) process(raw []byte) ([]byte, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if s.maxWidth > 0 && w > s.maxWidth {
		newH := h * s.maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, s.maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = s.maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

func (s *ImageService) Delete(ctx context.Context, imageURL string) error {
	p, ok := ImageBlobPath(imageURL)
	if !ok {
		return nil
	}
	if err := s.blob.DeleteFile(p); err != nil {
		return persistErr("delete image", err)
	}
	logger.WithCtx(ctx).Info("Image deleted", zap.String("path", p))
	return nil
}

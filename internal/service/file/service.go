package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrInvalidDataURL = errors.New("photo must be a base64 encoded jpeg or png data URL")

type FileService interface {
	// UploadPunchPhoto compresses and stores the photo taken with a punch.
	UploadPunchPhoto(ctx context.Context, date civil.Date, punchType string, file io.Reader, filename string) (string, error)

	// StorePunchDataURL stores a photo sent inline as a data URL.
	StorePunchDataURL(ctx context.Context, date civil.Date, punchType string, dataURL string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadPunchPhoto uploads a punch photo
// Compresses image to target size between 50KB - 150KB
func (s *fileServiceImpl) UploadPunchPhoto(ctx context.Context, date civil.Date, punchType string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	// Validate image format
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	// Read the entire file into memory
	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	return s.storePhoto(ctx, date, punchType, buffer)
}

// StorePunchDataURL implements FileService.
func (s *fileServiceImpl) StorePunchDataURL(ctx context.Context, date civil.Date, punchType string, dataURL string) (string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", ErrInvalidDataURL
	}
	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if mime != "image/jpeg" && mime != "image/jpg" && mime != "image/png" {
		return "", ErrInvalidDataURL
	}

	buffer, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	return s.storePhoto(ctx, date, punchType, buffer)
}

func (s *fileServiceImpl) storePhoto(ctx context.Context, date civil.Date, punchType string, buffer []byte) (string, error) {
	// Compress image to target size (50KB - 150KB)
	compressed, err := compressImage(buffer, 150*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Generate path: punches/{date}/{punchType}-{uuid}.jpg
	// Always output as JPEG after compression for consistency
	newFilename := fmt.Sprintf("%s-%s.jpg", punchType, uuid.New().String())
	path := filepath.Join("punches", date.String(), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload punch photo: %w", err)
	}

	return filepath.ToSlash(uploadedPath), nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage compresses an image to target size range
// maxSize: maximum allowed size (e.g., 150KB)
// minSize: minimum target size (e.g., 50KB)
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Small JPEGs are kept as they are
	if len(buffer) <= maxSize && isJPEG(buffer) {
		return buffer, nil
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Start with quality 85 and reduce progressively
	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Still too large, resize towards the middle of the range
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := resizeImage(img, newWidth, newHeight)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func isJPEG(buffer []byte) bool {
	return len(buffer) > 2 && buffer[0] == 0xFF && buffer[1] == 0xD8
}

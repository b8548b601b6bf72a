package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/config"
	"quill/internal/models"
	"quill/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/quill/uploads/images"
	DefaultImageMaxUploadSizeMB = 10

	// AvatarSize is the square edge of processed profile pictures.
	AvatarSize = 200
	// ArticleImageMaxSize caps the longest edge of article images.
	ArticleImageMaxSize = 1024

	WebPQuality = 70
)

type UploadImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService converts user uploads into fixed-size WebP files on disk and
// returns the public URL under which they are served.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadDir exposes the configured storage root so the server can mount it
// as a static route.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

// ProcessAvatar validates, squares and resizes an avatar upload to
// AvatarSize, then stores it under a content-derived name. Returns the
// public URL.
func (s *ImageService) ProcessAvatar(in UploadImageInput) (string, error) {
	timer := observability.StartImageTimer("avatar")
	defer timer()

	decoded, err := s.decodeUpload(in)
	if err != nil {
		return "", err
	}
	squared := cropToSquare(decoded)
	resized := resizeToFit(squared, AvatarSize, AvatarSize)
	return s.store(in.UserID, resized)
}

// ProcessArticleImage validates and resizes an article image so its longest
// edge does not exceed ArticleImageMaxSize. Returns the public URL.
func (s *ImageService) ProcessArticleImage(in UploadImageInput) (string, error) {
	timer := observability.StartImageTimer("article")
	defer timer()

	decoded, err := s.decodeUpload(in)
	if err != nil {
		return "", err
	}
	resized := resizeToFit(decoded, ArticleImageMaxSize, ArticleImageMaxSize)
	return s.store(in.UserID, resized)
}

func (s *ImageService) decodeUpload(in UploadImageInput) (image.Image, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, detectedType) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	return decoded, nil
}

// store encodes the image as WebP under a deterministic content hash, so
// re-uploading the same content overwrites rather than accumulates.
func (s *ImageService) store(userID uint, img image.Image) (string, error) {
	encoded, err := encodeWebP(img, WebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	hash := buildImageHash(userID, encoded)
	rel := filepath.ToSlash(filepath.Join(hash[:2], hash+".webp"))
	abs := filepath.Join(s.uploadDir, filepath.FromSlash(rel))
	if err := writeBytesToFile(abs, encoded); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/media/images/" + rel, nil
}

// cropToSquare takes the centered largest square of the source.
func cropToSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}
	edge := w
	if h < edge {
		edge = h
	}
	x := b.Min.X + (w-edge)/2
	y := b.Min.Y + (h-edge)/2

	dst := image.NewRGBA(image.Rect(0, 0, edge, edge))
	xdraw.Copy(dst, image.Point{}, src, image.Rect(x, y, x+edge, y+edge), xdraw.Src, nil)
	return dst
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func buildImageHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

package storage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// AvatarSize is the fixed square size avatars are normalized to
const AvatarSize = 256

// Expected validation failures. Handlers map these to user-facing messages
// instead of server errors.
var (
	ErrNoFile       = errors.New("no file provided")
	ErrBadExtension = errors.New("file extension not allowed")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// MediaStore persists uploaded post images and processed avatars under
// generated unique filenames.
type MediaStore struct {
	uploadDir string
	avatarDir string
}

// NewMediaStore creates a MediaStore, creating both directories if needed
func NewMediaStore(uploadDir, avatarDir string) (*MediaStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.MkdirAll(avatarDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar dir: %w", err)
	}
	return &MediaStore{uploadDir: uploadDir, avatarDir: avatarDir}, nil
}

// SaveAvatar processes an uploaded avatar image: it is flattened onto an
// opaque background, cropped to the centered square of side min(w, h),
// resized to 256x256 and stored as PNG under a fresh unique name. The
// returned path is storage-relative ("avatars/<name>.png").
func (s *MediaStore) SaveAvatar(r io.Reader, filename string) (string, error) {
	if r == nil || filename == "" {
		return "", ErrNoFile
	}
	if !allowedFile(filename) {
		return "", ErrBadExtension
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	opaque := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{255, 255, 255, 255})
	opaque = imaging.Overlay(opaque, img, image.Pt(0, 0), 1.0)

	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	squared := imaging.CropCenter(opaque, side, side)
	avatar := imaging.Resize(squared, AvatarSize, AvatarSize, imaging.Lanczos)

	name := uniqueToken() + ".png"
	fullPath := filepath.Join(s.avatarDir, name)
	if err := imaging.Save(avatar, fullPath); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	return "avatars/" + name, nil
}

// SaveUpload stores an uploaded post image unmodified. The original
// filename is sanitized and prefixed with a fresh unique token.
func (s *MediaStore) SaveUpload(r io.Reader, filename string) (string, error) {
	if r == nil || filename == "" {
		return "", ErrNoFile
	}
	if !allowedFile(filename) {
		return "", ErrBadExtension
	}

	stored := uniqueToken() + "_" + sanitizeFilename(filename)
	fullPath := filepath.Join(s.uploadDir, stored)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored upload, best-effort. Failures are swallowed so
// cleanup never blocks the operation that triggered it.
func (s *MediaStore) Remove(storedName string) {
	if storedName == "" {
		return
	}
	os.Remove(filepath.Join(s.uploadDir, filepath.Base(storedName)))
}

// UploadPath resolves a stored filename to its on-disk path. The name is
// reduced to its base to keep lookups inside the upload directory.
func (s *MediaStore) UploadPath(storedName string) string {
	return filepath.Join(s.uploadDir, filepath.Base(storedName))
}

// allowedFile checks the file extension against the image whitelist
func allowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename strips path components and replaces anything outside
// [A-Za-z0-9._-] with an underscore
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// uniqueToken returns a fresh hex token for stored filenames
func uniqueToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

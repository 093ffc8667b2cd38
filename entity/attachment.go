package entity

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxImageSize is the default upload limit for product images (16 MB).
const MaxImageSize = 16 << 20

var ErrFileTooLarge = errors.New("file too large")

func FileTooLargeError(filename string, size, limit int64) error {
	return fmt.Errorf("%w: %q is %d bytes, limit is %d MB", ErrFileTooLarge, filename, size, limit>>20)
}

// ImageMetadata holds GridFS metadata for an uploaded product image.
type ImageMetadata struct {
	MIMEType string `bson:"mime_type"`
	SellerID string `bson:"seller_id"`
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SecureFilename strips directories and unsafe characters from an uploaded name.
func SecureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	name = unsafeFilename.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// ImageFilename returns a unique, timestamp-prefixed storage name.
func ImageFilename(original string, now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102_150405"), SecureFilename(original))
}

// AllowedFile reports whether the filename has one of the allowed extensions.
func AllowedFile(filename string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// ImageUpload is an image file received with a product form.
type ImageUpload struct {
	Filename string
	MIMEType string
	Size     int64
	Reader   io.Reader
}

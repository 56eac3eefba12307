package gateway

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// MaxImageBytes keeps the base64-encoded request under the relay's 10mb cap.
const MaxImageBytes = 7 << 20

var (
	ErrNotImage      = errors.New("file is not an image")
	ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
)

// EncodeImageFile reads an image from disk and returns it as a base64 data
// URI, the same shape a browser's readAsDataURL produces.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return EncodeImage(data, filepath.Ext(path))
}

// EncodeImage sniffs the content type, falling back to the file extension
// for formats net/http does not detect (svg, avif, ...).
func EncodeImage(data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", ErrNotImage
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = mime.TypeByExtension(strings.ToLower(ext))
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", ErrNotImage
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	return dataurl.New(data, mediaType).String(), nil
}

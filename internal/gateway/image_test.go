package gateway

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.bin")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	uri, err := EncodeImageFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)

	decoded, err := dataurl.DecodeString(uri)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded.Data)
}

func TestEncodeImage_ExtensionFallback(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)

	uri, err := EncodeImage(svg, ".SVG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"), uri)
}

func TestEncodeImage_Rejects(t *testing.T) {
	_, err := EncodeImage([]byte("just some notes"), ".txt")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = EncodeImage(nil, ".png")
	assert.ErrorIs(t, err, ErrNotImage)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxImageBytes)...)
	_, err = EncodeImage(big, ".png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestEncodeImageFile_Missing(t *testing.T) {
	_, err := EncodeImageFile(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

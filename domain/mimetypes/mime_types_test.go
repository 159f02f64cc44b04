package mimetypes

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Smallest valid 1x1 PNG.
var pixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func dataURL(mime string, raw []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected MIME
		want     bool
	}{
		{"PNG", "image/png", ImagePNG, true},
		{"JPEG", "image/jpeg", ImageJPEG, true},
		{"GIF with params", "image/gif; foo=bar", ImageGIF, true},
		{"Mismatch", "image/png", ImageJPEG, false},
		{"Invalid MIME", "not a mime", ImagePNG, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Matches(tt.detected, tt.expected)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestDetectImage(t *testing.T) {
	req := require.New(t)

	kind, err := DetectImage(dataURL("image/png", pixelPNG), 1024)
	req.NoError(err)
	req.Equal(ImagePNG, kind)

	_, err = DetectImage(dataURL("image/png", pixelPNG), 10)
	req.ErrorContains(err, "exceeds")

	_, err = DetectImage(dataURL("text/plain", pixelPNG), 1024)
	req.Error(err)

	_, err = DetectImage(dataURL("image/png", []byte("just some text, not an image")), 1024)
	req.ErrorContains(err, "unsupported image type")

	_, err = DetectImage(dataURL("image/svg+xml", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)), 1024)
	req.Error(err)

	_, err = DetectImage(base64.StdEncoding.EncodeToString(pixelPNG), 1024)
	req.ErrorContains(err, "data URL")

	_, err = DetectImage("data:image/png;base64,"+strings.Repeat("!", 8), 1024)
	req.ErrorContains(err, "base64")
}

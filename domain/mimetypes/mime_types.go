package mimetypes

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWEBP MIME = "image/webp"
	ImageBMP  MIME = "image/bmp"
)

// Images accepted in chat messages. SVG is left out since it can carry script.
var allowedImages = map[MIME]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
	ImageGIF:  {},
	ImageWEBP: {},
	ImageBMP:  {},
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// DetectImage parses a "data:<mime>;base64,<payload>" URL, decodes it and
// sniffs the decoded bytes. The sniffed type wins over the declared one.
func DetectImage(dataURL string, maxBytes int) (MIME, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return Unknown, fmt.Errorf("image is not a data URL")
	}
	declared, params, found := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	if !found || !strings.Contains(params, "base64") {
		return Unknown, fmt.Errorf("image data URL is not base64 encoded")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return Unknown, fmt.Errorf("image exceeds %d bytes", maxBytes)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Unknown, fmt.Errorf("image payload is not valid base64")
	}
	if len(raw) == 0 {
		return Unknown, fmt.Errorf("image payload is empty")
	}
	if len(raw) > maxBytes {
		return Unknown, fmt.Errorf("image exceeds %d bytes", maxBytes)
	}

	if !strings.HasPrefix(declared, "image/") {
		return Unknown, fmt.Errorf("declared type %q is not an image", declared)
	}

	detected := mimetype.Detect(raw).String()
	for candidate := range allowedImages {
		if m, ok := Matches(detected, candidate); ok {
			return m, nil
		}
	}
	return Unknown, fmt.Errorf("unsupported image type %s", detected)
}

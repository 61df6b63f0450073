// Package attachment turns receipt images into the inline data URLs stored on transactions.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"

	"github.com/dustin/go-humanize"
)

const dataURLPrefix = "data:"

// Load reads the image at path and returns it as data:<mime>;base64,<payload>.
// Files larger than maxBytes are rejected before being read. A non-positive maxBytes
// falls back to models.DefaultPhotoMaxBytes.
func Load(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = models.DefaultPhotoMaxBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &ledgererror.ValidationError{Field: "photo", Value: path, Reason: "cannot be read", Err: err}
	}
	if info.IsDir() {
		return "", &ledgererror.ValidationError{Field: "photo", Value: path, Reason: "is a directory"}
	}
	if info.Size() > maxBytes {
		return "", &ledgererror.ValidationError{
			Field:  "photo",
			Value:  path,
			Reason: fmt.Sprintf("%s exceeds the %s limit", humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxBytes))),
			Err:    ledgererror.ErrPhotoTooLarge,
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &ledgererror.ValidationError{Field: "photo", Value: path, Reason: "cannot be read", Err: err}
	}
	defer f.Close()

	// The file may have grown since Stat.
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", &ledgererror.ValidationError{Field: "photo", Value: path, Reason: "cannot be read", Err: err}
	}
	if int64(len(data)) > maxBytes {
		return "", &ledgererror.ValidationError{Field: "photo", Value: path, Reason: "exceeds the size limit", Err: ledgererror.ErrPhotoTooLarge}
	}

	return Encode(data)
}

// Encode wraps raw image bytes in a data URL. Non-image content is rejected.
func Encode(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", &ledgererror.ValidationError{Field: "photo", Value: mime, Reason: "not an image"}
	}
	return dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Decode splits a data URL back into its MIME type and raw bytes.
func Decode(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, dataURLPrefix), ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return mime, data, nil
}

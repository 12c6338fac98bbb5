package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	MimeImage = "image/"

	// MaxImageSize caps uploaded answer/question images at 5MB, matching
	// the hunt client's own pre-check.
	MaxImageSize = 5 << 20
)

// ValidateMimeType sniffs the real content type from the first 512 bytes
// instead of trusting the upload's declared type.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}

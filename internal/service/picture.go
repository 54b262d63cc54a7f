package service

import (
	"encoding/base64"
	"errors"
	"strings"
)

const maxImageBytes = 5 * 1024 * 1024

var (
	ErrInvalidImagePayload  = errors.New("invalid image format: must be base64 with data:image/ prefix")
	ErrUnsupportedImageType = errors.New("unsupported image type: use JPEG, PNG, or WebP")
	ErrInvalidImageData     = errors.New("invalid base64 image data")
	ErrImageTooLarge        = errors.New("image too large: maximum size is 5MB")
)

var allowedImageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"webp": true,
}

// parseImageDataURL valida y decodifica un payload data:image/<tipo>;base64,<datos>.
func parseImageDataURL(payload string) (string, []byte, error) {
	if !strings.HasPrefix(payload, "data:image/") {
		return "", nil, ErrInvalidImagePayload
	}

	header, encoded, ok := strings.Cut(payload, ",")
	if !ok {
		return "", nil, ErrInvalidImageData
	}

	subtype := strings.TrimPrefix(header, "data:image/")
	if i := strings.Index(subtype, ";"); i >= 0 {
		subtype = subtype[:i]
	}
	subtype = strings.ToLower(subtype)
	if !allowedImageTypes[subtype] {
		return "", nil, ErrUnsupportedImageType
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrInvalidImageData
	}
	if len(data) > maxImageBytes {
		return "", nil, ErrImageTooLarge
	}

	return subtype, data, nil
}

package advice

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DefaultImageType is assumed when a data URI declares no media type
const DefaultImageType = "image/jpeg"

var ErrInvalidImage = errors.New("image is not a base64 data URI")

// InlineImage is image bytes sent alongside a prompt
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the image bytes in standard base64
func (i *InlineImage) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURI decodes data:<mime>;base64,<payload>
func ParseDataURI(uri string) (*InlineImage, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidImage
	}

	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if mimeType == "" {
		mimeType = DefaultImageType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	return &InlineImage{MIMEType: mimeType, Data: data}, nil
}

// EncodeDataURI builds a base64 data URI
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultImageType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Package qrimage renders registration links and check-in tokens as PNG QR
// codes.
package qrimage

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 300
	MinSize     = 64
	MaxSize     = 1024
)

// PNG encodes content as a size x size PNG with medium error correction.
// Out of range sizes fall back to DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	if size < MinSize || size > MaxSize {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode qr code")
	}
	return png, nil
}

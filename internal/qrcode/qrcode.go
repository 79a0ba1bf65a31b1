// Package qrcode renders the spectator link for phones and TVs.
package qrcode

import (
	"errors"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

var ErrNoURL = errors.New("qrcode: empty url")

// Generate encodes url as a PNG of size pixels. A size of zero or less
// uses DefaultSize.
func Generate(url string, size int) ([]byte, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrNoURL
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(url, qr.Medium, size)
}

// Terminal renders url as block characters for printing at startup.
func Terminal(url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrNoURL
	}
	code, err := qr.New(url, qr.Low)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

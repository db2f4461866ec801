// services/qrcode_service.go
package services

import (
	"errors"
	"os"

	"github.com/skip2/go-qrcode"
)

// QREncoder matches qrcode.Encode; injectable for tests.
type QREncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode renders a PNG QR code pointing at the voting terminal so
// operators can join from their phones.
func GenerateQRCode(width, height int, encode QREncoder) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid dimensions: width and height must be positive")
	}
	if encode == nil {
		encode = qrcode.Encode
	}

	terminalURL := os.Getenv("APPLICATION_URL")
	if terminalURL == "" {
		terminalURL = "http://localhost:8080" // Default for local testing
	}

	png, err := encode(terminalURL, qrcode.Medium, width)
	if err != nil {
		return nil, err
	}
	return png, nil
}

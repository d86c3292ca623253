package report

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize сторона PNG в пикселях
const DefaultQRSize = 256

// QRCodePNG кодирует content в PNG с уровнем коррекции Medium
func QRCodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty QR content", ErrRender)
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %v", ErrRender, err)
	}
	return png, nil
}

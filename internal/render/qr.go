package render

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrEmptyContent is returned when asked to encode an empty string.
var ErrEmptyContent = errors.New("qr: content is empty")

// QRString renders content as a QR code drawn with half-block runes, two
// module rows per text line.
func QRString(content string) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate qr code: %w", err)
	}
	return renderBitmap(code.Bitmap()), nil
}

func renderBitmap(bitmap [][]bool) string {
	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		row := bitmap[y]
		for x := range row {
			top := row[x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if y+2 < len(bitmap) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

package format

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeChars converts a C char array into UTF-8. Text stops at the first NUL.
// UTF-8 input is returned as is; anything else is treated as Windows-1252,
// the common 8-bit encoding for legacy C strings.
func DecodeChars(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return "", nil
	}
	// Fast path: ASCII and well-formed UTF-8
	if utf8.Valid(b) {
		return string(b), nil
	}
	// Slow path: Use decoder for extended characters (0x80-0xFF)
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("chars: decode Windows-1252: %w", err)
	}
	return string(decoded), nil
}

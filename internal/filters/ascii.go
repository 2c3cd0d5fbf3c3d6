package filters

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
)

// HexDecode decodes ASCIIHexDecode data. Whitespace is ignored, '>' ends the
// data and an odd final digit is padded with zero.
func HexDecode(data []byte) ([]byte, error) {
	digits := make([]byte, 0, len(data))
	for _, c := range data {
		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, len(digits)/2)
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, fmt.Errorf("ascii hex: %w", err)
	}
	return out, nil
}

// A85Decode decodes ASCII85Decode data, with or without the <~ ~> framing.
func A85Decode(data []byte) ([]byte, error) {
	body := bytes.TrimSpace(data)
	body = bytes.TrimPrefix(body, []byte("<~"))
	if i := bytes.Index(body, []byte("~>")); i >= 0 {
		body = body[:i]
	}

	clean := make([]byte, 0, len(body))
	for _, c := range body {
		if !isWhitespace(c) {
			clean = append(clean, c)
		}
	}

	// z expands one character into four zero bytes
	out := make([]byte, 4*len(clean)+4)
	n, _, err := ascii85.Decode(out, clean, true)
	if err != nil {
		return nil, fmt.Errorf("ascii85: %w", err)
	}
	return out[:n], nil
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/filters"
)

// ErrUndecodable is wrapped by DecodeError.
var ErrUndecodable = errors.New("contentstream: stream cannot be decoded")

// DecodeError reports a stream that is neither text nor decompressible
type DecodeError struct {
	Filters []string
	Err     error
}

func (e *DecodeError) Error() string {
	if len(e.Filters) == 0 {
		return fmt.Sprintf("%v: %v", ErrUndecodable, e.Err)
	}
	return fmt.Sprintf("%v (filters %s): %v", ErrUndecodable, strings.Join(e.Filters, ", "), e.Err)
}

// Unwrap returns both the sentinel and the cause
func (e *DecodeError) Unwrap() []error {
	return []error{ErrUndecodable, e.Err}
}

// DecodeStream returns the operator text of a content stream. The declared
// filters are tried first. Without them, data carrying a zlib header is
// inflated, data that already looks like text is used as it is, and
// anything else is inflated as a last resort.
func DecodeStream(raw []byte, filterNames []string) ([]byte, error) {
	var declared error
	if len(filterNames) > 0 {
		out, err := filters.Decode(raw, filterNames)
		if err == nil {
			return out, nil
		}
		declared = err
	}

	if hasZlibHeader(raw) {
		if out, err := filters.Inflate(raw); err == nil {
			return out, nil
		}
	}
	if looksLikeText(raw) {
		return raw, nil
	}

	out, err := filters.Inflate(raw)
	if err == nil {
		return out, nil
	}
	return nil, &DecodeError{Filters: filterNames, Err: errors.Join(declared, err)}
}

// hasZlibHeader checks the deflate method nibble and the header checksum
func hasZlibHeader(data []byte) bool {
	if len(data) < 2 || data[0]&0x0f != 8 {
		return false
	}
	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// FilterRaw decodes a stream, applies fn and returns the result. A stream
// that cannot be decoded is logged and returned unchanged with ok=false.
func FilterRaw(raw []byte, filterNames []string, fn func([]byte) []byte) (out []byte, ok bool) {
	decoded, err := DecodeStream(raw, filterNames)
	if err != nil {
		log.Warn("leaving stream unmodified", "error", err, "bytes", len(raw))
		return raw, false
	}
	return fn(decoded), true
}

// looksLikeText reports whether data reads as a content stream: no NUL
// bytes and almost no control characters.
func looksLikeText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	var control int
	for _, c := range data {
		if c < 0x20 && c != '\n' && c != '\r' && c != '\t' && c != '\f' {
			control++
		}
	}
	return control*100 <= len(data)
}

package filters

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for a filter name with no decoder.
var ErrUnsupported = errors.New("filters: unsupported filter")

// Func decodes the data of one filter stage.
type Func func(data []byte) ([]byte, error)

var decoders = map[string]Func{
	"FlateDecode":    Inflate,
	"Fl":             Inflate,
	"ASCIIHexDecode": HexDecode,
	"AHx":            HexDecode,
	"ASCII85Decode":  A85Decode,
	"A85":            A85Decode,
}

// Supported reports whether name has a decoder. Names may carry a leading
// slash.
func Supported(name string) bool {
	_, ok := decoders[trimName(name)]
	return ok
}

// Decode applies the named filters in order.
func Decode(data []byte, names []string) ([]byte, error) {
	out := data
	for i, name := range names {
		fn, ok := decoders[trimName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
		}
		var err error
		out, err = fn(out)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
		}
	}
	return out, nil
}

func trimName(name string) string {
	if len(name) > 0 && name[0] == '/' {
		return name[1:]
	}
	return name
}

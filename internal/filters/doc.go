// Package filters decodes and encodes PDF content stream data.
//
// Only the filters seen on page content streams are supported:
//
//	data, err := filters.Decode(raw, []string{"FlateDecode"})
//
// Filters are applied in the order the stream dictionary lists them.
// [Deflate] produces FlateDecode data for rewritten streams.
package filters

// Package contentstream rewrites PDF page content streams by position.
//
// A stream is tokenized with a [Parser], each operation is classified into
// an [OpKind] and a single running [PositionState] decides where text and
// images sit:
//
//	spec := contentstream.AreaSpec{Target: model.NewRect(0, 0, 100, 100)}
//	res := contentstream.FilterStream(content, spec)
//
// Filtering is line oriented. When a text, path or rectangle operator falls
// in the area its whole source line is dropped, while a Do invocation only
// loses its own tokens. Points inside an exception rectangle are never
// removed.
//
// # Markers
//
// [FilterStreamWithMarker] and [ReplaceImages] leave a text marker such as
// [TableKey] where content was removed, so the text can be matched later.
//
// # Decoding
//
// [DecodeStream] turns raw stream bytes into operator text. [FilterRaw]
// wraps it so that a stream that cannot be decoded passes through
// untouched.
package contentstream

package filters

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"errors"
	"testing"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestInflate tests basic zlib decompression
func TestInflate(t *testing.T) {
	original := []byte("BT /F1 12 Tf 1 0 0 1 50 50 Tm (Hola) Tj ET")

	decoded, err := Inflate(zlibCompress(original))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("got %q, want %q", decoded, original)
	}
}

// TestInflateTruncated tests recovery of a stream missing its checksum
func TestInflateTruncated(t *testing.T) {
	original := bytes.Repeat([]byte("0 0 m 10 10 l S\n"), 50)
	compressed := zlibCompress(original)

	decoded, err := Inflate(compressed[:len(compressed)-4])
	if err != nil {
		t.Fatalf("expected partial recovery, got %v", err)
	}
	if !bytes.HasPrefix(original, decoded) || len(decoded) == 0 {
		t.Errorf("unexpected recovered data %q", decoded)
	}
}

// TestInflateGarbage tests that plain text is rejected
func TestInflateGarbage(t *testing.T) {
	if _, err := Inflate([]byte("q 1 0 0 1 0 0 cm Q")); err == nil {
		t.Error("expected error for non-zlib data")
	}
}

// TestDeflateRoundTrip tests that deflated data inflates back
func TestDeflateRoundTrip(t *testing.T) {
	original := []byte("q 100 0 0 50 20 30 cm /Im1 Do Q")
	compressed, err := Deflate(original)
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	decoded, err := Inflate(compressed)
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("got %q, want %q", decoded, original)
	}
}

// TestHexDecode tests ASCII hex decoding
func TestHexDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"plain", "48656C6C6F>", []byte("Hello")},
		{"whitespace", "48 65\n6C 6c 6F>", []byte("Hello")},
		{"odd digits", "486>", []byte{0x48, 0x60}},
		{"no terminator", "4142", []byte("AB")},
		{"empty", ">", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexDecode([]byte(tt.in))
			if err != nil {
				t.Fatalf("HexDecode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := HexDecode([]byte("4G>")); err == nil {
		t.Error("expected error for invalid digit")
	}
}

// TestA85Decode tests ASCII85 decoding with and without framing
func TestA85Decode(t *testing.T) {
	original := []byte("Curación de tablas\x00\x00\x00\x00")
	enc := make([]byte, ascii85.MaxEncodedLen(len(original)))
	enc = enc[:ascii85.Encode(enc, original)]

	for _, in := range [][]byte{
		append(append([]byte("<~"), enc...), "~>"...),
		append(append([]byte{}, enc...), "~>"...),
		enc,
	} {
		got, err := A85Decode(in)
		if err != nil {
			t.Fatalf("A85Decode(%q) failed: %v", in, err)
		}
		if !bytes.Equal(got, original) {
			t.Errorf("A85Decode(%q) = %q, want %q", in, got, original)
		}
	}
}

// TestDecodeChain tests filters applied in order
func TestDecodeChain(t *testing.T) {
	original := []byte("BT (x) Tj ET")
	compressed := zlibCompress(original)
	enc := make([]byte, ascii85.MaxEncodedLen(len(compressed)))
	enc = enc[:ascii85.Encode(enc, compressed)]

	got, err := Decode(enc, []string{"/ASCII85Decode", "FlateDecode"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("got %q, want %q", got, original)
	}

	same, err := Decode(original, nil)
	if err != nil || !bytes.Equal(same, original) {
		t.Errorf("no filters should return the input, got %q, %v", same, err)
	}
}

// TestDecodeUnsupported tests the unsupported filter error
func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("x"), []string{"DCTDecode"})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if Supported("/JBIG2Decode") {
		t.Error("JBIG2Decode should not be supported")
	}
	if !Supported("/Fl") {
		t.Error("Fl abbreviation should be supported")
	}
}

// Package compression packs stored content blobs.
package compression

import (
	"bytes"
	"fmt"
)

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// NoneCompressor stores data as is.
type NoneCompressor struct{}

func (NoneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// ForName returns the compressor configured by name: zstd, gzip or none.
func ForName(name string) (Compressor, error) {
	switch name {
	case "", "zstd":
		return ZstdCompressor{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	case "none":
		return NoneCompressor{}, nil
	}
	return nil, fmt.Errorf("unknown compression %q", name)
}

// Auto compresses with Writer and decompresses whatever format the data is
// in, so rows written under an older setting stay readable.
type Auto struct {
	Writer Compressor
}

func (a Auto) Compress(data []byte) ([]byte, error) {
	return a.Writer.Compress(data)
}

func (a Auto) Decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return ZstdCompressor{}.Decompress(data)
	case bytes.HasPrefix(data, gzipMagic):
		return GzipCompressor{}.Decompress(data)
	}
	return data, nil
}

package compression

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor shares one encoder and one decoder. EncodeAll and DecodeAll
// are safe for concurrent use; with a concurrency of 1 neither starts
// background goroutines.
type ZstdCompressor struct{}

var zstdCodec = sync.OnceValues(func() (*zstdPair, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &zstdPair{enc: enc, dec: dec}, nil
})

type zstdPair struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	codec, err := zstdCodec()
	if err != nil {
		return nil, err
	}
	return codec.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	codec, err := zstdCodec()
	if err != nil {
		return nil, err
	}
	return codec.dec.DecodeAll(data, nil)
}

package repositories

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Save payloads are stored zstd-compressed. The encoder and decoder are
// safe for concurrent use through EncodeAll and DecodeAll.
var (
	payloadEncoder *zstd.Encoder
	payloadDecoder *zstd.Decoder
)

func init() {
	var err error
	payloadEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
	}
	payloadDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
	}
}

func compressPayload(payload []byte) []byte {
	return payloadEncoder.EncodeAll(payload, make([]byte, 0, len(payload)))
}

func decompressPayload(stored []byte) ([]byte, error) {
	payload, err := payloadDecoder.DecodeAll(stored, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %v", err)
	}
	return payload, nil
}

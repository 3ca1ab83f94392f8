// Package proto holds the wire messages and service bindings of the Petzy
// gRPC API. Messages travel as JSON through a codec registered under
// CodecName; every client call made through NewPetzyServiceClient selects it.
package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/mem"
)

const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) (mem.BufferSlice, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mem.BufferSlice{mem.SliceBuffer(b)}, nil
}

func (jsonCodec) Unmarshal(data mem.BufferSlice, v any) error {
	buf := data.MaterializeToBuffer(mem.DefaultBufferPool())
	defer buf.Free()
	return json.Unmarshal(buf.ReadOnlyData(), v)
}

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodecV2(jsonCodec{})
}

// Package authv1 defines the accountauth.v1 gRPC services, their messages, and
// the JSON codec they are exchanged with.
package authv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype for JSON-encoded messages.
// Clients select it with grpc.CallContentSubtype(CodecName) or grpc.ForceCodec(Codec{}).
const CodecName = "json"

// Codec encodes messages with encoding/json.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}

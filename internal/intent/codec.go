package intent

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec selects the wire encoding of intent envelopes.
type Codec string

const (
	CodecJSON  Codec = "json"
	CodecProto Codec = "proto"
)

// ParseCodec accepts "json", "proto" or empty (json).
func ParseCodec(s string) (Codec, error) {
	switch Codec(s) {
	case "", CodecJSON:
		return CodecJSON, nil
	case CodecProto:
		return CodecProto, nil
	}
	return "", fmt.Errorf("unknown codec %q", s)
}

// Envelope is an intent as sent to remote consumers.
type Envelope struct {
	ID     string `json:"id"`
	Seq    uint64 `json:"seq"`
	TsMs   int64  `json:"ts_ms"`
	Intent Intent `json:"intent"`
}

// Marshal encodes env. Proto frames carry the envelope as a
// google.protobuf.Struct with the same field names as the JSON form.
func Marshal(c Codec, env Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	if c != CodecProto {
		return data, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode envelope struct: %w", err)
	}
	return proto.Marshal(s)
}

// Unmarshal decodes a frame produced by Marshal.
func Unmarshal(c Codec, data []byte) (Envelope, error) {
	var env Envelope
	if c == CodecProto {
		var s structpb.Struct
		if err := proto.Unmarshal(data, &s); err != nil {
			return env, fmt.Errorf("decode envelope struct: %w", err)
		}
		raw, err := json.Marshal(s.AsMap())
		if err != nil {
			return env, fmt.Errorf("decode envelope: %w", err)
		}
		data = raw
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name; requests travel as application/json.
const CodecName = "json"

// JSONCodec marshals the plain message structs of this package. It replaces
// Connect's default protobuf JSON codec, which only accepts proto messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode %T: %w", msg, err)
	}
	return nil
}

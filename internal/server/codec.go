package server

import (
	"encoding/json"
	"fmt"
)

// jsonCodec serves plain Go request and response structs over connect.
// It replaces both JSON codecs connect registers for protobuf messages.
type jsonCodec struct {
	name string
}

var (
	codecJSON        = jsonCodec{name: "json"}
	codecJSONCharset = jsonCodec{name: "json; charset=utf-8"}
)

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (c jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode %T: %w", msg, err)
	}
	return nil
}

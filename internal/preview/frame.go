package preview

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/krow/pkg/surface"
)

// Frame is a batch of surface writes sent to the client.
type Frame struct {
	Seq  uint64       `msgpack:"seq" json:"seq"`
	Root uint64       `msgpack:"root,omitempty" json:"root,omitempty"`
	Ops  []surface.Op `msgpack:"ops" json:"ops"`
}

// ClientEvent is a DOM event reported by the client.
type ClientEvent struct {
	Node  uint64 `msgpack:"node" json:"node"`
	Type  string `msgpack:"type" json:"type"`
	Value any    `msgpack:"value,omitempty" json:"value,omitempty"`
}

// Format is the wire encoding of frames and events.
type Format string

const (
	FormatMsgpack Format = "msgpack"
	FormatJSON    Format = "json"
)

// ParseFormat validates a format name. The empty string yields def.
func ParseFormat(s string, def Format) (Format, error) {
	switch Format(s) {
	case "":
		return def, nil
	case FormatMsgpack, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("preview: unknown format %q", s)
	}
}

// MessageType is the WebSocket message type frames are sent as.
func (f Format) MessageType() int {
	if f == FormatJSON {
		return websocket.TextMessage
	}
	return websocket.BinaryMessage
}

// Marshal encodes v.
func (f Format) Marshal(v any) ([]byte, error) {
	if f == FormatJSON {
		return json.Marshal(v)
	}
	return msgpack.Marshal(v)
}

// Unmarshal decodes data into v.
func (f Format) Unmarshal(data []byte, v any) error {
	if f == FormatJSON {
		return json.Unmarshal(data, v)
	}
	return msgpack.Unmarshal(data, v)
}

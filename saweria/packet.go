package saweria

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Engine.IO packet types
const (
	packetOpen    = '0'
	packetClose   = '1'
	packetPing    = '2'
	packetPong    = '3'
	packetMessage = '4'
)

// Socket.IO packet types, carried inside Engine.IO messages
const (
	sioConnect      = '0'
	sioDisconnect   = '1'
	sioEvent        = '2'
	sioConnectError = '4'
)

var errEmptyEvent = errors.New("event has no name")

// encodeEvent builds `42["name",args...]` for the default namespace.
func encodeEvent(name string, args ...interface{}) ([]byte, error) {
	body, err := json.Marshal(append([]interface{}{name}, args...))
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", name, err)
	}
	return append([]byte{packetMessage, sioEvent}, body...), nil
}

// decodeEvent parses the part of an event packet after its type byte:
// an optional "/nsp," prefix, an optional ack id, then a JSON array.
func decodeEvent(data []byte) (string, []json.RawMessage, error) {
	if len(data) > 0 && data[0] == '/' {
		i := 0
		for i < len(data) && data[i] != ',' {
			i++
		}
		if i == len(data) {
			return "", nil, fmt.Errorf("namespace without payload: %q", data)
		}
		data = data[i+1:]
	}
	for len(data) > 0 && data[0] >= '0' && data[0] <= '9' {
		data = data[1:]
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return "", nil, fmt.Errorf("decode event: %w", err)
	}
	if len(parts) == 0 {
		return "", nil, errEmptyEvent
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("event name: %w", err)
	}
	return name, parts[1:], nil
}

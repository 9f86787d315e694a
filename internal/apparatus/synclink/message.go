package synclink

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// MaxPayloadSize is the largest frame the radio link carries.
	MaxPayloadSize = 32

	messageFields = 6
)

var (
	ErrCorruptMessage     = errors.New("corrupt message")
	ErrTransmissionFailed = errors.New("transmission failed")
)

// Message is the single record exchanged between the two boxes. The slave
// only ever sets PullDetected; the master sets the instruction fields.
type Message struct {
	PullDetected       bool `json:"pull_detected"`
	TriggerReward      bool `json:"trigger_reward"`
	LongTimeoutEnabled bool `json:"long_timeout_enabled"`
	LockLever          bool `json:"lock_lever"`
	RemoteLock         bool `json:"remote_lock"`
	// Count is incremented once per send call and is diagnostic only.
	Count uint8 `json:"count"`
}

var (
	_ msgpack.CustomEncoder = (*Message)(nil)
	_ msgpack.CustomDecoder = (*Message)(nil)
)

func (m *Message) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(messageFields); err != nil {
		return err
	}
	for _, flag := range []bool{m.PullDetected, m.TriggerReward, m.LongTimeoutEnabled, m.LockLever, m.RemoteLock} {
		if err := enc.EncodeBool(flag); err != nil {
			return err
		}
	}
	return enc.EncodeUint8(m.Count)
}

func (m *Message) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != messageFields {
		return fmt.Errorf("expected %d fields, got %d", messageFields, n)
	}

	flags := []*bool{&m.PullDetected, &m.TriggerReward, &m.LongTimeoutEnabled, &m.LockLever, &m.RemoteLock}
	for _, flag := range flags {
		if *flag, err = dec.DecodeBool(); err != nil {
			return err
		}
	}
	m.Count, err = dec.DecodeUint8()
	return err
}

// Encode serializes m into a radio frame.
func Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("msgpack marshaling: %w", err)
	}
	return data, nil
}

// Decode parses a radio frame. Frames with the wrong shape or size are
// reported as ErrCorruptMessage.
func Decode(data []byte) (Message, error) {
	if len(data) == 0 || len(data) > MaxPayloadSize {
		return Message{}, fmt.Errorf("%w: payload size %d", ErrCorruptMessage, len(data))
	}

	var m Message
	reader := bytes.NewReader(data)
	if err := msgpack.NewDecoder(reader).Decode(&m); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrCorruptMessage, err)
	}
	if reader.Len() != 0 {
		return Message{}, fmt.Errorf("%w: %d trailing bytes", ErrCorruptMessage, reader.Len())
	}
	return m, nil
}

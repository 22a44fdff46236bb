package discord

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// IPC opcodes.
const (
	opHandshake uint32 = 0
	opFrame     uint32 = 1
	opClose     uint32 = 2
	opPing      uint32 = 3
	opPong      uint32 = 4
)

// maxFramePayload bounds incoming frames. Discord payloads are small; a
// larger length prefix means a corrupt or hostile stream.
const maxFramePayload = 1 << 20

// frame is one IPC message: a little-endian opcode and length followed by a
// JSON payload.
type frame struct {
	Op      uint32
	Payload []byte
}

// writeFrame encodes v as JSON and writes it with the given opcode.
func writeFrame(w io.Writer, op uint32, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], op)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing frame payload: %w", err)
	}
	return nil
}

// readFrame reads one full frame from r.
func readFrame(r io.Reader) (frame, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("reading frame header: %w", err)
	}

	op := binary.LittleEndian.Uint32(header[0:4])
	length := binary.LittleEndian.Uint32(header[4:8])
	if length > maxFramePayload {
		return frame{}, fmt.Errorf("frame payload of %d bytes exceeds limit", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return frame{}, fmt.Errorf("reading frame payload: %w", err)
	}

	return frame{Op: op, Payload: payload}, nil
}

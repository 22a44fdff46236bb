package discord

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	req := handshakeRequest{Version: 1, ClientID: "1461306150497550376"}
	if err := writeFrame(&buf, opHandshake, req); err != nil {
		t.Fatalf("writeFrame() error = %v", err)
	}

	f, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame() error = %v", err)
	}
	if f.Op != opHandshake {
		t.Errorf("op = %d, want %d", f.Op, opHandshake)
	}

	var got handshakeRequest
	if err := json.Unmarshal(f.Payload, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got != req {
		t.Errorf("payload = %+v, want %+v", got, req)
	}
}

func TestReadFrame_TruncatedHeader(t *testing.T) {
	if _, err := readFrame(bytes.NewReader([]byte{1, 0, 0})); err == nil {
		t.Error("readFrame() expected error for truncated header")
	}
}

func TestReadFrame_TruncatedPayload(t *testing.T) {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], opFrame)
	binary.LittleEndian.PutUint32(header[4:8], 100)

	if _, err := readFrame(bytes.NewReader(header)); err == nil {
		t.Error("readFrame() expected error for truncated payload")
	}
}

func TestReadFrame_OversizedRejected(t *testing.T) {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], opFrame)
	binary.LittleEndian.PutUint32(header[4:8], maxFramePayload+1)

	_, err := readFrame(bytes.NewReader(header))
	if err == nil {
		t.Fatal("readFrame() expected error for oversized frame")
	}
	if !strings.Contains(err.Error(), "exceeds limit") {
		t.Errorf("readFrame() error = %v, want size limit error", err)
	}
}

func TestActivityWireShape(t *testing.T) {
	// Discord rejects empty optional sections, so they must vanish from
	// the encoded payload rather than appear as null or zeroed objects.
	data, err := json.Marshal(&Activity{Details: "In Main Menu", State: "Idle"})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"timestamps", "assets", "buttons"} {
		if bytes.Contains(data, []byte(field)) {
			t.Errorf("encoded activity contains empty %q section: %s", field, data)
		}
	}

	full := &Activity{
		Details:    "Playing Singleplayer",
		State:      "World: Adventure",
		Timestamps: &Timestamps{Start: 1755700000},
		Assets:     &Assets{LargeImage: "hytale_logo", LargeText: "Hytale"},
		Buttons:    []Button{{Label: "Hytale Website", URL: "https://hytale.com"}},
	}
	data, err = json.Marshal(full)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"timestamps"`, `"large_image"`, `"buttons"`} {
		if !bytes.Contains(data, []byte(field)) {
			t.Errorf("encoded activity missing %s: %s", field, data)
		}
	}
}

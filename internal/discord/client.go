// Package discord implements the local IPC protocol Discord exposes for
// rich presence: a version handshake followed by SET_ACTIVITY commands,
// framed as little-endian opcode/length headers with JSON payloads, over a
// Unix socket or a named pipe.
package discord

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotConnected is returned by commands issued before Connect.
	ErrNotConnected = errors.New("not connected to discord")
	// ErrNoSocket means no running Discord client could be found.
	ErrNoSocket = errors.New("discord ipc socket not found")
)

// Client is a connection to a locally running Discord client.
type Client struct {
	appID string

	mu        sync.Mutex
	conn      io.ReadWriteCloser
	connected bool
}

// NewClient returns an unconnected client for the given application id.
func NewClient(appID string) *Client {
	return &Client{appID: appID}
}

// Connected reports whether the last command left the connection healthy.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect dials the first responsive IPC socket and performs the version
// handshake. Connecting an already connected client is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return nil
	}

	conn, err := dialIPC()
	if err != nil {
		return err
	}

	req := handshakeRequest{Version: 1, ClientID: c.appID}
	if err := writeFrame(conn, opHandshake, req); err != nil {
		conn.Close()
		return fmt.Errorf("sending handshake: %w", err)
	}

	f, err := readFrame(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("reading handshake reply: %w", err)
	}
	if f.Op == opClose {
		conn.Close()
		return fmt.Errorf("handshake rejected: %s", f.Payload)
	}
	var reply commandReply
	if err := json.Unmarshal(f.Payload, &reply); err != nil {
		conn.Close()
		return fmt.Errorf("decoding handshake reply: %w", err)
	}
	if reply.Evt == "ERROR" {
		conn.Close()
		return fmt.Errorf("handshake error: %s", reply.Data.Message)
	}

	c.conn = conn
	c.connected = true
	return nil
}

// SetActivity publishes the given presence.
func (c *Client) SetActivity(activity *Activity) error {
	return c.sendActivity(activity)
}

// ClearActivity removes the presence without closing the connection.
func (c *Client) ClearActivity() error {
	return c.sendActivity(nil)
}

func (c *Client) sendActivity(activity *Activity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}

	cmd := command{
		Cmd:   "SET_ACTIVITY",
		Nonce: uuid.NewString(),
		Args: commandArgs{
			PID:      os.Getpid(),
			Activity: activity,
		},
	}
	if err := c.roundTrip(cmd); err != nil {
		// The pipe is likely dead. Drop it so the caller can reconnect.
		c.closeLocked()
		return err
	}
	return nil
}

// roundTrip sends one command and waits for the matching reply, answering
// pings and skipping stale replies along the way.
func (c *Client) roundTrip(cmd command) error {
	if err := writeFrame(c.conn, opFrame, cmd); err != nil {
		return fmt.Errorf("sending command: %w", err)
	}

	for {
		f, err := readFrame(c.conn)
		if err != nil {
			return fmt.Errorf("reading reply: %w", err)
		}
		switch f.Op {
		case opPing:
			if err := writeFrame(c.conn, opPong, json.RawMessage(f.Payload)); err != nil {
				return fmt.Errorf("answering ping: %w", err)
			}
		case opClose:
			return fmt.Errorf("connection closed by discord: %s", f.Payload)
		case opFrame:
			var reply commandReply
			if err := json.Unmarshal(f.Payload, &reply); err != nil {
				return fmt.Errorf("decoding reply: %w", err)
			}
			if reply.Evt == "ERROR" {
				return fmt.Errorf("discord rejected command: %s", reply.Data.Message)
			}
			if reply.Nonce != "" && reply.Nonce != cmd.Nonce {
				continue
			}
			return nil
		default:
			return fmt.Errorf("unexpected opcode %d", f.Op)
		}
	}
}

// Close releases the connection. Safe to call on an unconnected client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if c.conn == nil {
		c.connected = false
		return nil
	}
	// Best effort: the close opcode lets Discord drop the presence
	// immediately instead of waiting for the pipe to time out.
	_ = writeFrame(c.conn, opClose, struct{}{})
	err := c.conn.Close()
	c.conn = nil
	c.connected = false
	return err
}

type handshakeRequest struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type command struct {
	Cmd   string      `json:"cmd"`
	Args  commandArgs `json:"args"`
	Nonce string      `json:"nonce"`
}

type commandArgs struct {
	PID int `json:"pid"`
	// Activity nil means "clear"; the field must still be present.
	Activity *Activity `json:"activity"`
}

type commandReply struct {
	Cmd   string `json:"cmd"`
	Evt   string `json:"evt"`
	Nonce string `json:"nonce"`
	Data  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"data"`
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hytalerpc/hytale-rpc-go/internal/history"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

// validFormats lists all valid output formats.
var validFormats = map[string]bool{
	"text":  true,
	"jsonl": true,
}

// activityRecord is the JSON Lines shape of one activity transition.
type activityRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	State       string    `json:"state"`
	World       string    `json:"world,omitempty"`
	Server      string    `json:"server,omitempty"`
	ServerName  string    `json:"server_name,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	Multiplayer bool      `json:"multiplayer,omitempty"`
}

func newActivityRecord(a hytalelog.GameActivity, ts time.Time) activityRecord {
	return activityRecord{
		Timestamp:   ts,
		State:       a.Kind.String(),
		World:       a.WorldName,
		Server:      a.ServerAddress,
		ServerName:  a.ServerName,
		Stage:       a.SubStage,
		Multiplayer: a.IsMultiplayer,
	}
}

// outputActivity writes one activity transition in the given format.
func outputActivity(format string, a hytalelog.GameActivity, ts time.Time, out io.Writer) error {
	switch format {
	case "jsonl":
		data, err := json.Marshal(newActivityRecord(a, ts))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text":
		_, err := fmt.Fprintf(out, "[%s] %s\n", ts.Format("15:04:05"), a)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// sessionRecord is the JSON Lines shape of one play session.
type sessionRecord struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	World      string     `json:"world,omitempty"`
	Server     string     `json:"server,omitempty"`
	ServerName string     `json:"server_name,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Duration   string     `json:"duration,omitempty"`
}

// outputSession writes one play session in the given format.
func outputSession(format string, s history.Session, out io.Writer) error {
	switch format {
	case "jsonl":
		rec := sessionRecord{
			ID:         s.ID,
			Kind:       s.Kind,
			World:      s.World,
			Server:     s.Server,
			ServerName: s.ServerName,
			StartedAt:  s.StartedAt,
		}
		if !s.Open() {
			ended := s.EndedAt
			rec.EndedAt = &ended
			rec.Duration = sessionDuration(s)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text":
		_, err := fmt.Fprintf(out, "[%s] %s %s (%s)\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Kind, sessionTarget(s), sessionDuration(s))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// sessionTarget names what the session was played in.
func sessionTarget(s history.Session) string {
	switch {
	case s.World != "":
		return fmt.Sprintf("world %q", s.World)
	case s.ServerName != "":
		return fmt.Sprintf("server %q", s.ServerName)
	case s.Server != "":
		return "server " + s.Server
	default:
		return "unknown"
	}
}

// sessionDuration renders how long the session lasted, or "open" for a
// session still in progress.
func sessionDuration(s history.Session) string {
	if s.Open() {
		return "open"
	}
	return s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
}

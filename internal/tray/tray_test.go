package tray

import "testing"

func TestSetStatus_CoalescesToLatest(t *testing.T) {
	tr := New(Options{}, nil)
	tr.SetStatus("first")
	tr.SetStatus("second")
	tr.SetStatus("third")

	select {
	case <-tr.statusCh:
	default:
		t.Fatal("status signal not pending")
	}
	if got := tr.currentStatus(); got != "third" {
		t.Errorf("currentStatus() = %q, want %q", got, "third")
	}
	// One pending signal at most.
	select {
	case <-tr.statusCh:
		t.Error("second status signal pending")
	default:
	}
}

func TestEmit_DropsWhenReceiverGone(t *testing.T) {
	tr := New(Options{}, nil)
	for i := 0; i < cap(tr.events)+3; i++ {
		tr.emit(EventToggleWorldName) // must not block
	}
	if len(tr.events) != cap(tr.events) {
		t.Errorf("buffered %d events, want %d", len(tr.events), cap(tr.events))
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{EventQuit, "quit"},
		{EventToggleWorldName, "toggle-world-name"},
		{EventToggleServerIP, "toggle-server-ip"},
		{Event(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Event(%d).String() = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestDefaultStatus(t *testing.T) {
	tr := New(Options{ShowWorldName: true}, nil)
	if got := tr.currentStatus(); got != "Waiting for Hytale..." {
		t.Errorf("initial status = %q", got)
	}
	if !tr.opts.ShowWorldName || tr.opts.ShowServerIP {
		t.Errorf("options not retained: %+v", tr.opts)
	}
}

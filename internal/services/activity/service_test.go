package activity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/apperrors"
)

const header = "timestamp,duration,AppName,Title\n"

func writeLog(t *testing.T, path, rows string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(header+rows), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func newTestService(t *testing.T, rows string) (*Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "activity.csv")
	if rows != "" {
		writeLog(t, path, rows)
	}

	svc, err := New(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})
	return svc, path
}

func waitEvent(t *testing.T, svc *Service, want EventType) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %d", want)
			return Event{}
		}
	}
}

func TestNew_InitialLoad(t *testing.T) {
	svc, path := newTestService(t, "2024-05-20 09:00:00,60,Code,main.go - x\n2024-05-20 09:01:00,30,Slack,\n")

	ev := waitEvent(t, svc, EventSnapshotLoaded)
	if ev.Snapshot == nil || len(ev.Snapshot.Records) != 2 {
		t.Fatalf("initial snapshot = %+v, want 2 records", ev.Snapshot)
	}
	if ev.Snapshot.Path != path {
		t.Errorf("Path = %q, want %q", ev.Snapshot.Path, path)
	}
	if svc.Snapshot() != ev.Snapshot {
		t.Error("Snapshot() should return the published snapshot")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New("", 0); !errors.Is(err, apperrors.ErrNoLogConfigured) {
		t.Errorf("New(\"\") error = %v, want ErrNoLogConfigured", err)
	}
	if _, err := New(filepath.Join(t.TempDir(), "log.txt"), 0); !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("New(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNew_MissingFileReportsError(t *testing.T) {
	svc, _ := newTestService(t, "")

	ev := waitEvent(t, svc, EventError)
	if ev.Error == nil {
		t.Error("expected an error for a missing log")
	}
	if svc.Snapshot() != nil {
		t.Error("Snapshot() should be nil before a successful load")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	svc, path := newTestService(t, "2024-05-20 09:00:00,60,Code,\n")
	waitEvent(t, svc, EventSnapshotLoaded)

	writeLog(t, path, "2024-05-20 09:00:00,60,Code,\n2024-05-20 10:00:00,90,Firefox,\n2024-05-20 11:00:00,45,Slack,\n")

	ev := waitEvent(t, svc, EventSnapshotLoaded)
	if got := len(ev.Snapshot.Records); got != 3 {
		t.Errorf("reloaded records = %d, want 3", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	svc, path := newTestService(t, "2024-05-20 09:00:00,60,Code,\n")
	waitEvent(t, svc, EventSnapshotLoaded)

	other := filepath.Join(filepath.Dir(path), "notes.csv")
	if err := os.WriteFile(other, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case ev := <-svc.Events():
		t.Errorf("unexpected event %+v for unrelated file", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReload(t *testing.T) {
	svc, _ := newTestService(t, "2024-05-20 09:00:00,60,Code,\n")
	waitEvent(t, svc, EventSnapshotLoaded)
	first := svc.Snapshot()

	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if svc.Snapshot() == first {
		t.Error("Reload() should publish a new snapshot")
	}
}

func TestSendEvent_DropsOldest(t *testing.T) {
	s := &Service{eventChan: make(chan Event, 2)}

	s.sendEvent(Event{Type: EventError, Error: errors.New("1")})
	s.sendEvent(Event{Type: EventError, Error: errors.New("2")})
	s.sendEvent(Event{Type: EventError, Error: errors.New("3")})

	first := <-s.eventChan
	second := <-s.eventChan
	if first.Error.Error() != "2" || second.Error.Error() != "3" {
		t.Errorf("got %v, %v; want 2, 3", first.Error, second.Error)
	}
}

func TestClose_Twice(t *testing.T) {
	svc, _ := newTestService(t, "2024-05-20 09:00:00,60,Code,main.go - x\n")

	if err := svc.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

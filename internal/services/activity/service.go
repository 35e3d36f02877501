// Package activity owns the loaded activity log and reloads it when the file
// changes on disk.
package activity

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/activity-insights-tui/internal/apperrors"
	"github.com/j-veylop/activity-insights-tui/internal/ingest"
	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// DefaultDebounce coalesces bursts of writes from the tracker.
const DefaultDebounce = 100 * time.Millisecond

// Snapshot is one successful load of the log. It is never mutated after
// publication.
type Snapshot struct {
	Path     string
	Format   ingest.Format
	Records  []models.ActivityRecord
	Stats    ingest.Stats
	LoadedAt time.Time
	Took     time.Duration
}

// Event represents an activity service event.
type Event struct {
	Type     EventType
	Snapshot *Snapshot
	Error    error
}

// EventType defines the type of activity event.
type EventType int

const (
	EventSnapshotLoaded EventType = iota
	EventError
)

// Service loads the activity log and watches it for changes.
type Service struct {
	mu            sync.RWMutex
	snapshot      *Snapshot
	filePath      string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	closeOnce     sync.Once
	debounceTimer *time.Timer
}

// New loads the log at filePath and starts watching its directory. A failed
// initial load is reported as an EventError rather than returned, so a log
// that is fixed later is still picked up.
func New(filePath string, debounce time.Duration) (*Service, error) {
	if filePath == "" {
		return nil, apperrors.ErrNoLogConfigured
	}
	if _, err := ingest.FormatForPath(filePath); err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		filePath:  filePath,
		debounce:  debounce,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.reload()
	return s, nil
}

// Events returns the event channel for subscribing to log reloads.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the watched log path.
func (s *Service) Path() string {
	return s.filePath
}

// Snapshot returns the latest successful load, or nil.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Reload re-reads the log immediately.
func (s *Service) Reload() error {
	return s.reload()
}

func (s *Service) reload() error {
	started := time.Now()
	records, stats, err := ingest.Load(s.filePath)
	if err != nil {
		logger.Warn("Activity log load failed", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}

	format, _ := ingest.FormatForPath(s.filePath)
	snap := &Snapshot{
		Path:     s.filePath,
		Format:   format,
		Records:  records,
		Stats:    stats,
		LoadedAt: started,
		Took:     time.Since(started),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	logger.Info("Activity log loaded", "path", s.filePath, "records", len(records), "took", snap.Took)
	s.sendEvent(Event{Type: EventSnapshotLoaded, Snapshot: snap})
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory so editors that replace the file are seen.
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, func() {
					_ = s.reload()
				})
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Menu is the top-level section shown in the main screen.
type Menu int

const (
	MenuHome Menu = iota
	MenuCollections
	MenuSettings
)

// Menus lists the sections in navigation order.
func Menus() []Menu {
	return []Menu{MenuHome, MenuCollections, MenuSettings}
}

func (m Menu) String() string {
	switch m {
	case MenuHome:
		return "Home"
	case MenuCollections:
		return "Collections"
	case MenuSettings:
		return "Settings"
	default:
		return fmt.Sprintf("Menu(%d)", int(m))
	}
}

// Endpoint identifies the Chroma server and scope in use.
type Endpoint struct {
	URL      string
	Tenant   string
	Database string
}

// Snapshot represents the session state the UI renders from.
type Snapshot struct {
	Menu              Menu
	CurrentCollection string

	Endpoint  Endpoint
	Connected bool
	Version   string

	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive heartbeat failures
}

// IsOffline returns true when the server has missed multiple heartbeats.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Action is a state transition applied by Dispatch.
type Action interface {
	reduce(s *Snapshot)
}

// SetMenu switches the visible section.
type SetMenu struct{ Menu Menu }

func (a SetMenu) reduce(s *Snapshot) { s.Menu = a.Menu }

// SelectCollection makes Name the collection shown in the browser. Empty
// clears the selection.
type SelectCollection struct{ Name string }

func (a SelectCollection) reduce(s *Snapshot) { s.CurrentCollection = a.Name }

// CollectionsDeleted clears the current collection if it is among Names.
type CollectionsDeleted struct{ Names []string }

func (a CollectionsDeleted) reduce(s *Snapshot) {
	if slices.Contains(a.Names, s.CurrentCollection) {
		s.CurrentCollection = ""
	}
}

// Connected records a successful connection and resets the session.
type Connected struct{ Endpoint Endpoint }

func (a Connected) reduce(s *Snapshot) {
	*s = Snapshot{Endpoint: a.Endpoint, Connected: true, LastChecked: time.Now()}
}

// Disconnected returns to the connect screen.
type Disconnected struct{}

func (Disconnected) reduce(s *Snapshot) { *s = Snapshot{} }

// VersionLoaded stores the server version string.
type VersionLoaded struct{ Version string }

func (a VersionLoaded) reduce(s *Snapshot) { s.Version = a.Version }

// Heartbeat records one health check outcome.
type Heartbeat struct{ Err error }

func (a Heartbeat) reduce(s *Snapshot) {
	s.LastChecked = time.Now()
	if a.Err != nil {
		s.LastError = a.Err
		s.ConsecutiveFailures++
		return
	}
	s.LastError = nil
	s.ConsecutiveFailures = 0
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Dispatch applies actions in order under one lock.
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		if a != nil {
			a.reduce(&s.snapshot)
		}
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

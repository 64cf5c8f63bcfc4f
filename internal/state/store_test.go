package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Menu != MenuHome || snap.CurrentCollection != "" || snap.Connected {
		t.Fatalf("zero snapshot = %#v", snap)
	}
}

func TestStore_ConnectedResetsSession(t *testing.T) {
	var s Store
	s.Dispatch(SetMenu{Menu: MenuSettings}, SelectCollection{Name: "docs"}, Heartbeat{Err: errors.New("x")})

	ep := Endpoint{URL: "http://localhost:8000", Tenant: "t", Database: "d"}
	before := time.Now()
	s.Dispatch(Connected{Endpoint: ep})

	snap := s.Snapshot()
	if !snap.Connected || snap.Endpoint != ep {
		t.Fatalf("snapshot = %#v, want connected to %#v", snap, ep)
	}
	if snap.Menu != MenuHome || snap.CurrentCollection != "" {
		t.Fatalf("menu/collection = %v/%q, want reset", snap.Menu, snap.CurrentCollection)
	}
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("health not reset: %#v", snap)
	}
	if snap.LastChecked.Before(before) {
		t.Fatalf("LastChecked = %v, want >= %v", snap.LastChecked, before)
	}

	s.Dispatch(Disconnected{})
	if s.Snapshot().Connected {
		t.Fatalf("Disconnected should clear the session")
	}
}

func TestStore_CollectionsDeletedClearsOnlyMatchingSelection(t *testing.T) {
	var s Store
	s.Dispatch(SelectCollection{Name: "docs"})

	s.Dispatch(CollectionsDeleted{Names: []string{"other"}})
	if got := s.Snapshot().CurrentCollection; got != "docs" {
		t.Fatalf("CurrentCollection = %q, want docs", got)
	}

	s.Dispatch(CollectionsDeleted{Names: []string{"other", "docs"}})
	if got := s.Snapshot().CurrentCollection; got != "" {
		t.Fatalf("CurrentCollection = %q, want cleared", got)
	}
}

func TestStore_HeartbeatFailuresAndRecovery(t *testing.T) {
	var s Store

	origErr := errors.New("boom")
	s.Dispatch(Heartbeat{Err: origErr})
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	s.Dispatch(Heartbeat{Err: origErr})
	if !s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline() = false, want true after 2 failures")
	}

	s.Dispatch(Heartbeat{})
	snap = s.Snapshot()
	if snap.IsOffline() || snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("success should reset health: %#v", snap)
	}
}

func TestStore_VersionAndMenu(t *testing.T) {
	var s Store
	s.Dispatch(VersionLoaded{Version: "1.0.7"}, SetMenu{Menu: MenuCollections}, nil)
	snap := s.Snapshot()
	if snap.Version != "1.0.7" || snap.Menu != MenuCollections {
		t.Fatalf("snapshot = %#v", snap)
	}
	if MenuCollections.String() != "Collections" || len(Menus()) != 3 {
		t.Fatalf("unexpected menu metadata")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Dispatch(Heartbeat{Err: errors.New("x")})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	if got := s.Snapshot().ConsecutiveFailures; got != 50 {
		t.Fatalf("ConsecutiveFailures = %d, want 50", got)
	}
}

// Package state holds chromaview's session state.
//
// # Overview
//
// The Store is the single place where the current menu, the selected
// collection, the connected endpoint and the server's health live. Both the
// bubbletea model and the background heartbeat monitor write to it, so every
// change goes through Dispatch with a typed Action:
//
//	store.Dispatch(state.SetMenu{Menu: state.MenuCollections})
//	store.Dispatch(state.SelectCollection{Name: "docs"})
//	store.Dispatch(state.Heartbeat{Err: err})
//
// Readers take a Snapshot, which is a value copy. There is no package-level
// store; the application root owns the one instance.
//
// # Health
//
// Heartbeat actions count consecutive failures. IsOffline reports true after
// two misses in a row, and the header switches to the offline badge.
//
// # Concurrency Model
//
// Dispatch acquires the write lock for the whole batch of actions so a reader
// never observes half of a multi-action update. Snapshot takes the read lock
// and copies the error value.
package state

// Package bridge is the command layer between the terminal front-end and a
// Chroma server.
//
// # Overview
//
// Every backend operation is a named Command invoked with a flat Args record.
// Invoke dispatches to the command's handler and always returns a Result:
// either the typed payload or an error message. Handler errors, panics and
// payload type mismatches are all converted to failed results, so callers
// never see a Go error or an unwinding goroutine.
//
// The bridge owns at most one backend client at a time. create_client
// replaces it; check_tenant_and_database re-scopes it once the tenant and
// database are confirmed to exist. Data commands issued before a client
// exists fail with "No client found".
//
// # Paging
//
// fetch_embeddings takes offset as a page index. The handler multiplies it by
// limit before calling the backend.
//
// # Observability
//
// Each dispatch is logged through zap and, when Options.Metrics is set,
// counted and timed through Prometheus collectors.
package bridge

// Package chroma adapts the chroma-go v2 client to the calls chromaview
// makes against a Chroma server.
//
// # Overview
//
// Client covers heartbeat, version, reset, tenant and database existence
// checks, collection list/get/create/delete, record counts, and paged record
// reads. Connection setup, credentials and error decoding are chroma-go's;
// this package flattens its typed results into plain maps the explorer can
// classify and render.
//
// # Scoping
//
// Collection endpoints live under /api/v2/tenants/{tenant}/databases/{database}.
// A Client carries one tenant/database pair. The command bridge dials a new
// Client once a pair has been checked.
//
// # Embedding Functions
//
// chromaview never embeds text. Collection get and create pass an inert
// embedding function so chroma-go does not load its default ONNX model, and
// listing, counting and paging go through the client's raw request path for
// the same reason.
//
// # Errors
//
// Chroma's {"error","message"} body becomes *APIError and Error() returns the
// server message verbatim so it can be shown to the user unchanged. Decode
// failures are wrapped with "decode response".
//
// # Usage
//
//	client, err := chroma.NewClient(chroma.Options{URL: "http://localhost:8000"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	cols, err := client.ListCollections(ctx)
package chroma

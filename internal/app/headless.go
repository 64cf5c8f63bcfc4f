package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
	"github.com/five82/chromaview/internal/explorer"
)

// Dial runs the connect sequence with the resolved connection and records it
// as the last used connection.
func (e *Env) Dial(ctx context.Context) (bridge.ConnectParams, error) {
	p, err := bridge.Connect(ctx, e.Bridge, e.ConnectParams())
	if err != nil {
		e.Logger.Warn("connect failed", zap.String("url", p.URL), zap.Error(err))
		return p, fmt.Errorf("connect %s: %w", p.URL, err)
	}
	if err := e.Prefs.SetLastConnection(p.URL, p.Tenant, p.Database); err != nil {
		e.Logger.Warn("save last connection", zap.Error(err))
	}
	e.Logger.Info("connected", zap.String("url", p.URL), zap.String("tenant", p.Tenant), zap.String("database", p.Database))
	return p, nil
}

// ListCollections connects and returns the collections with favorites first,
// the same order the Collections pane shows.
func (e *Env) ListCollections(ctx context.Context) ([]explorer.Collection, error) {
	p, err := e.Dial(ctx)
	if err != nil {
		return nil, err
	}
	res := bridge.Invoke[[]chroma.Collection](ctx, e.Bridge, bridge.FetchCollections, nil)
	if !res.OK() {
		return nil, errors.New(res.Err)
	}
	list := explorer.NewCollectionList()
	list.Replace(explorer.FromChroma(res.Value))
	return list.Display(e.Prefs.Favorites(p.URL)), nil
}

// ResetDatabase connects and deletes every collection in the database.
func (e *Env) ResetDatabase(ctx context.Context) error {
	if _, err := e.Dial(ctx); err != nil {
		return err
	}
	res := bridge.Invoke[bool](ctx, e.Bridge, bridge.ResetChroma, nil)
	if !res.OK() {
		return errors.New(res.Err)
	}
	e.Logger.Info("database reset")
	return nil
}

// ServerVersion connects and reports the server version. The error is set
// when the server is reachable but too old for the v2 API.
func (e *Env) ServerVersion(ctx context.Context) (string, error) {
	if _, err := e.Dial(ctx); err != nil {
		return "", err
	}
	res := bridge.Invoke[string](ctx, e.Bridge, bridge.GetChromaVersion, nil)
	if !res.OK() {
		return "", errors.New(res.Err)
	}
	return res.Value, chroma.CheckServerVersion(res.Value)
}

package bridge

import (
	"context"
	"fmt"
	"io"

	"github.com/five82/chromaview/internal/chroma"
)

func defaultHandlers() map[Command]handler {
	return map[Command]handler{
		CreateClient:           handleCreateClient,
		HealthCheck:            handleHealthCheck,
		CheckTenantAndDatabase: handleCheckTenantAndDatabase,
		GetChromaVersion:       handleGetChromaVersion,
		ResetChroma:            handleResetChroma,
		FetchCollections:       handleFetchCollections,
		FetchCollectionData:    handleFetchCollectionData,
		FetchRowCount:          handleFetchRowCount,
		FetchEmbeddings:        handleFetchEmbeddings,
		CreateCollection:       handleCreateCollection,
		DeleteCollection:       handleDeleteCollection,
		CreateWindow:           handleCreateWindow,
	}
}

func handleCreateClient(_ context.Context, b *Bridge, args Args) (any, error) {
	url, err := args.String("url")
	if err != nil {
		return nil, err
	}
	auth, err := args.OptionalAuth("authConfig")
	if err != nil {
		return nil, err
	}
	opts := chroma.Options{URL: url, Auth: auth, Timeout: b.timeout, Logger: b.logger.Named("chroma")}
	client, err := b.dial(opts)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	closeClient(b.client)
	b.client = client
	b.endpoint = opts
	return true, nil
}

func handleHealthCheck(ctx context.Context, b *Bridge, _ Args) (any, error) {
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	if err := c.Heartbeat(ctx); err != nil {
		return nil, err
	}
	return true, nil
}

// handleCheckTenantAndDatabase reports whether both exist and, when they do,
// re-scopes the current client to them.
func handleCheckTenantAndDatabase(ctx context.Context, b *Bridge, args Args) (any, error) {
	tenant, err := args.String("tenant")
	if err != nil {
		return nil, err
	}
	database, err := args.String("database")
	if err != nil {
		return nil, err
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}

	ok, err := c.TenantExists(ctx, tenant)
	if err != nil || !ok {
		return false, err
	}
	ok, err = c.DatabaseExists(ctx, tenant, database)
	if err != nil || !ok {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	opts := b.endpoint
	opts.Tenant = tenant
	opts.Database = database
	scoped, err := b.dial(opts)
	if err != nil {
		return nil, err
	}
	closeClient(b.client)
	b.client = scoped
	b.endpoint = opts
	return true, nil
}

// closeClient releases the connections of a client being replaced.
func closeClient(c Chroma) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}

func handleGetChromaVersion(ctx context.Context, b *Bridge, _ Args) (any, error) {
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	return c.Version(ctx)
}

func handleResetChroma(ctx context.Context, b *Bridge, _ Args) (any, error) {
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	ok, err := c.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error resetting chroma: %v", err)
	}
	return ok, nil
}

func handleFetchCollections(ctx context.Context, b *Bridge, _ Args) (any, error) {
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	cols, err := c.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	if cols == nil {
		cols = []chroma.Collection{}
	}
	return cols, nil
}

func handleFetchCollectionData(ctx context.Context, b *Bridge, args Args) (any, error) {
	name, err := args.String("collectionName")
	if err != nil {
		return nil, err
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	return c.GetCollection(ctx, name)
}

func handleFetchRowCount(ctx context.Context, b *Bridge, args Args) (any, error) {
	name, err := args.String("collectionName")
	if err != nil {
		return nil, err
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	col, err := c.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Count(ctx, col.ID)
}

// handleFetchEmbeddings receives offset as a page index and converts it to
// the row offset Chroma expects.
func handleFetchEmbeddings(ctx context.Context, b *Bridge, args Args) (any, error) {
	name, err := args.String("collectionName")
	if err != nil {
		return nil, err
	}
	limit, err := args.Int("limit")
	if err != nil {
		return nil, err
	}
	pageIndex, err := args.Int("offset")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if pageIndex < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", pageIndex)
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	col, err := c.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	recs, err := c.Get(ctx, col.ID, limit, pageIndex*limit)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []chroma.Record{}
	}
	return recs, nil
}

func handleCreateCollection(ctx context.Context, b *Bridge, args Args) (any, error) {
	name, err := args.String("collectionName")
	if err != nil {
		return nil, err
	}
	metadata, err := args.OptionalMap("metadata")
	if err != nil {
		return nil, err
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	if _, err := c.CreateCollection(ctx, name, metadata); err != nil {
		return nil, err
	}
	return true, nil
}

func handleDeleteCollection(ctx context.Context, b *Bridge, args Args) (any, error) {
	names, err := args.Strings("collectionNames")
	if err != nil {
		return nil, err
	}
	c, err := b.current()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := c.DeleteCollection(ctx, name); err != nil {
			return nil, err
		}
	}
	return Void{}, nil
}

func handleCreateWindow(_ context.Context, b *Bridge, args Args) (any, error) {
	url, err := args.String("url")
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	w := b.window
	b.mu.Unlock()
	if w == nil {
		return nil, fmt.Errorf("no window opener configured")
	}
	if err := w.OpenWindow(url); err != nil {
		return nil, err
	}
	return true, nil
}

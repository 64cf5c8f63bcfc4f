package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/chroma"
)

// Command names a backend operation. The string values are the wire names.
type Command string

const (
	FetchCollections       Command = "fetch_collections"
	FetchCollectionData    Command = "fetch_collection_data"
	FetchRowCount          Command = "fetch_row_count"
	FetchEmbeddings        Command = "fetch_embeddings"
	CreateCollection       Command = "create_collection"
	DeleteCollection       Command = "delete_collection"
	ResetChroma            Command = "reset_chroma"
	GetChromaVersion       Command = "get_chroma_version"
	HealthCheck            Command = "health_check"
	CheckTenantAndDatabase Command = "check_tenant_and_database"
	CreateClient           Command = "create_client"
	CreateWindow           Command = "create_window"
)

// Commands lists every command in declaration order.
func Commands() []Command {
	return []Command{
		FetchCollections, FetchCollectionData, FetchRowCount, FetchEmbeddings,
		CreateCollection, DeleteCollection, ResetChroma, GetChromaVersion,
		HealthCheck, CheckTenantAndDatabase, CreateClient, CreateWindow,
	}
}

// Void is the payload of commands that return nothing.
type Void struct{}

// ErrNoClient is returned by data commands before create_client succeeded.
var ErrNoClient = errors.New("No client found")

// Result is either a typed value or an error message. It never carries a
// Go error so call sites must branch on OK explicitly.
type Result[T any] struct {
	Value T
	Err   string
	ok    bool
}

// OK reports whether the command succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v, ok: true} }

// Fail wraps an error message.
func Fail[T any](msg string) Result[T] {
	if msg == "" {
		msg = "unknown error"
	}
	return Result[T]{Err: msg}
}

// Chroma is the backend surface the handlers use. *chroma.Client, the
// chroma-go adapter, satisfies it.
type Chroma interface {
	Heartbeat(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	Reset(ctx context.Context) (bool, error)
	TenantExists(ctx context.Context, tenant string) (bool, error)
	DatabaseExists(ctx context.Context, tenant, database string) (bool, error)
	ListCollections(ctx context.Context) ([]chroma.Collection, error)
	GetCollection(ctx context.Context, name string) (chroma.Collection, error)
	CreateCollection(ctx context.Context, name string, metadata map[string]any) (chroma.Collection, error)
	DeleteCollection(ctx context.Context, name string) error
	Count(ctx context.Context, collectionID string) (int, error)
	Get(ctx context.Context, collectionID string, limit, offset int) ([]chroma.Record, error)
}

var _ Chroma = (*chroma.Client)(nil)

// Dialer builds a backend client for the given options.
type Dialer func(opts chroma.Options) (Chroma, error)

// DialHTTP is the default Dialer.
func DialHTTP(opts chroma.Options) (Chroma, error) {
	c, err := chroma.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// WindowOpener switches the front-end into its main view for url.
type WindowOpener interface {
	OpenWindow(url string) error
}

// Options configure New.
type Options struct {
	Dial    Dialer
	Window  WindowOpener
	Timeout time.Duration
	Metrics *Metrics
	Logger  *zap.Logger
}

// Bridge routes commands to handlers and owns the current backend client.
type Bridge struct {
	mu       sync.Mutex
	client   Chroma
	endpoint chroma.Options
	window   WindowOpener

	dial     Dialer
	timeout  time.Duration
	metrics  *Metrics
	logger   *zap.Logger
	handlers map[Command]handler
}

type handler func(ctx context.Context, b *Bridge, args Args) (any, error)

// New creates a bridge with no client.
func New(opts Options) *Bridge {
	dial := opts.Dial
	if dial == nil {
		dial = DialHTTP
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		dial:     dial,
		window:   opts.Window,
		timeout:  opts.Timeout,
		metrics:  opts.Metrics,
		logger:   logger,
		handlers: defaultHandlers(),
	}
}

// SetWindowOpener installs the front-end hook used by create_window.
func (b *Bridge) SetWindowOpener(w WindowOpener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.window = w
}

// Endpoint returns the URL, tenant and database of the current client.
func (b *Bridge) Endpoint() (url, tenant, database string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return "", "", "", false
	}
	return b.endpoint.URL, b.endpoint.Tenant, b.endpoint.Database, true
}

// Invoke runs cmd and converts its outcome into a Result. Handler errors,
// panics and payload type mismatches all become error results.
func Invoke[T any](ctx context.Context, b *Bridge, cmd Command, args Args) Result[T] {
	if b == nil {
		return Fail[T]("bridge is nil")
	}
	raw, err := b.dispatch(ctx, cmd, args)
	if err != nil {
		return Fail[T](err.Error())
	}
	v, ok := raw.(T)
	if !ok {
		return Fail[T](fmt.Sprintf("%s: unexpected result type %T", cmd, raw))
	}
	return Ok(v)
}

func (b *Bridge) dispatch(ctx context.Context, cmd Command, args Args) (out any, err error) {
	h, ok := b.handlers[cmd]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", string(cmd))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%s panicked: %v", cmd, r)
		}
		elapsed := time.Since(start)
		b.metrics.observe(cmd, err, elapsed)
		if err != nil {
			b.logger.Warn("command failed",
				zap.String("command", string(cmd)),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			return
		}
		b.logger.Debug("command completed",
			zap.String("command", string(cmd)),
			zap.Duration("elapsed", elapsed))
	}()

	return h(ctx, b, args)
}

func (b *Bridge) current() (Chroma, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil, ErrNoClient
	}
	return b.client, nil
}

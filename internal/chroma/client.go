package chroma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chromago "github.com/chroma-core/chroma/clients/go"
	chromalog "github.com/chroma-core/chroma/clients/go/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client adapts the chroma-go v2 client to the calls chromaview makes. It
// is scoped to one tenant and database; dial again to change scope.
type Client struct {
	api      chromago.Client
	rest     restClient
	baseURL  string
	tenant   string
	database string
}

// restClient is the raw request path of the chroma-go HTTP client. Collection
// reads go through it so listing never instantiates embedding functions.
type restClient interface {
	ExecuteRequest(ctx context.Context, method, path string, request interface{}) ([]byte, error)
}

// Auth is a single credential header attached to every request. Username
// and Password are set for basic auth; Header and Value then carry the same
// credentials already encoded.
type Auth struct {
	Header   string
	Value    string
	Username string
	Password string
}

// Options configure NewClient.
type Options struct {
	URL      string
	Tenant   string
	Database string
	Auth     Auth
	Timeout  time.Duration
	Logger   *zap.Logger
}

const (
	DefaultURL      = "http://localhost:8000"
	DefaultTenant   = "default_tenant"
	DefaultDatabase = "default_database"

	defaultUserAgent = "chromaview/0.1"
	requestTimeout   = 10 * time.Second
	listPageSize     = 100
)

// NewClient builds a Client for the server at opts.URL. No request is made.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	tenant := strings.TrimSpace(opts.Tenant)
	if tenant == "" {
		tenant = DefaultTenant
	}
	database := strings.TrimSpace(opts.Database)
	if database == "" {
		database = DefaultDatabase
	}

	clientOpts := []chromago.ClientOption{
		chromago.WithBaseURL(base.String()),
		chromago.WithDatabaseAndTenant(database, tenant),
		chromago.WithHTTPClient(&http.Client{Timeout: timeout}),
		chromago.WithDefaultHeaders(map[string]string{"User-Agent": defaultUserAgent}),
	}
	if auth := authOption(opts.Auth); auth != nil {
		clientOpts = append(clientOpts, auth)
	}
	if opts.Logger != nil {
		clientOpts = append(clientOpts, chromago.WithLogger(chromalog.NewZapLogger(opts.Logger)))
	}

	api, err := chromago.NewHTTPClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create chroma client: %w", err)
	}
	rest, ok := api.(restClient)
	if !ok {
		return nil, fmt.Errorf("create chroma client: %T has no request path", api)
	}
	return &Client{
		api:      api,
		rest:     rest,
		baseURL:  base.String(),
		tenant:   tenant,
		database: database,
	}, nil
}

// authOption maps the configured credentials onto a chroma-go credentials
// provider. Headers the providers do not model are sent as-is.
func authOption(a Auth) chromago.ClientOption {
	if a.Username != "" || a.Password != "" {
		return chromago.WithAuth(chromago.NewBasicAuthCredentialsProvider(a.Username, a.Password))
	}
	if a.Header == "" || a.Value == "" {
		return nil
	}
	switch {
	case strings.EqualFold(a.Header, string(chromago.XChromaTokenHeader)):
		return chromago.WithAuth(chromago.NewTokenAuthCredentialsProvider(a.Value, chromago.XChromaTokenHeader))
	case strings.EqualFold(a.Header, string(chromago.AuthorizationTokenHeader)) && strings.HasPrefix(a.Value, "Bearer "):
		token := strings.TrimPrefix(a.Value, "Bearer ")
		return chromago.WithAuth(chromago.NewTokenAuthCredentialsProvider(token, chromago.AuthorizationTokenHeader))
	default:
		return chromago.WithDefaultHeaders(map[string]string{a.Header: a.Value})
	}
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Tenant returns the tenant collection calls are scoped to.
func (c *Client) Tenant() string { return c.tenant }

// Database returns the database collection calls are scoped to.
func (c *Client) Database() string { return c.database }

// Close releases idle connections held by the underlying client.
func (c *Client) Close() error {
	return c.api.Close()
}

// Heartbeat checks that the server answers.
func (c *Client) Heartbeat(ctx context.Context) error {
	return translate(c.api.Heartbeat(ctx))
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	v, err := c.api.GetVersion(ctx)
	if err != nil {
		return "", translate(err)
	}
	return strings.TrimSpace(v), nil
}

// Reset wipes every collection on the server. The server must run with
// ALLOW_RESET enabled.
func (c *Client) Reset(ctx context.Context) (bool, error) {
	if err := c.api.Reset(ctx); err != nil {
		return false, translate(err)
	}
	return true, nil
}

// TenantExists reports whether tenant exists. A 404 is not an error.
func (c *Client) TenantExists(ctx context.Context, tenant string) (bool, error) {
	_, err := c.api.GetTenant(ctx, chromago.NewTenant(tenant))
	return exists(err)
}

// DatabaseExists reports whether database exists under tenant.
func (c *Client) DatabaseExists(ctx context.Context, tenant, database string) (bool, error) {
	_, err := c.api.GetDatabase(ctx, chromago.NewDatabase(database, chromago.NewTenant(tenant)))
	return exists(err)
}

// ListCollections returns every collection in the client's scope, reading
// the server's pages until a short one comes back.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var out []Collection
	for offset := 0; ; offset += listPageSize {
		path := c.collectionsPath() + "?" + url.Values{
			"limit":  {strconv.Itoa(listPageSize)},
			"offset": {strconv.Itoa(offset)},
		}.Encode()
		body, err := c.rest.ExecuteRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, translate(err)
		}
		var page []chromago.CollectionModel
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		for _, m := range page {
			if err := validateID(m.ID); err != nil {
				return nil, err
			}
			out = append(out, fromModel(m))
		}
		if len(page) < listPageSize {
			return out, nil
		}
	}
}

// GetCollection fetches a collection by name.
func (c *Client) GetCollection(ctx context.Context, name string) (Collection, error) {
	col, err := c.api.GetCollection(ctx, name, chromago.WithEmbeddingFunctionGet(inertEmbedder{}))
	if err != nil {
		return Collection{}, translate(err)
	}
	if err := validateID(col.ID()); err != nil {
		return Collection{}, err
	}
	return fromCollection(col), nil
}

// CreateCollection creates a collection; metadata may be nil. The server
// keeps its own embedding configuration.
func (c *Client) CreateCollection(ctx context.Context, name string, metadata map[string]any) (Collection, error) {
	opts := []chromago.CreateCollectionOption{
		chromago.WithEmbeddingFunctionCreate(inertEmbedder{}),
		chromago.WithDisableEFConfigStorage(),
	}
	if len(metadata) > 0 {
		opts = append(opts, chromago.WithCollectionMetadataCreate(chromago.NewMetadataFromMap(metadata)))
	}
	col, err := c.api.CreateCollection(ctx, name, opts...)
	if err != nil {
		return Collection{}, translate(err)
	}
	return fromCollection(col), nil
}

// DeleteCollection removes a collection by name.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return translate(c.api.DeleteCollection(ctx, name))
}

// Count returns the number of records in the collection with the given id.
func (c *Client) Count(ctx context.Context, collectionID string) (int, error) {
	if err := validateID(collectionID); err != nil {
		return 0, err
	}
	body, err := c.rest.ExecuteRequest(ctx, http.MethodGet, c.collectionsPath()+"/"+collectionID+"/count", nil)
	if err != nil {
		return 0, translate(err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return n, nil
}

// Get returns up to limit records starting at row offset, with documents,
// metadata and embeddings included.
func (c *Client) Get(ctx context.Context, collectionID string, limit, offset int) ([]Record, error) {
	if err := validateID(collectionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	op, err := chromago.NewCollectionGetOp(
		chromago.WithInclude(chromago.IncludeDocuments, chromago.IncludeMetadatas, chromago.IncludeEmbeddings),
		chromago.WithLimit(limit),
		chromago.WithOffset(offset),
	)
	if err != nil {
		return nil, err
	}
	if err := op.PrepareAndValidate(); err != nil {
		return nil, err
	}
	body, err := c.rest.ExecuteRequest(ctx, http.MethodPost, c.collectionsPath()+"/"+collectionID+"/get", op)
	if err != nil {
		return nil, translate(err)
	}
	var payload getResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.records(), nil
}

func (c *Client) collectionsPath() string {
	return "tenants/" + url.PathEscape(c.tenant) + "/databases/" + url.PathEscape(c.database) + "/collections"
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	err = translate(err)
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid collection id %q: %w", id, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

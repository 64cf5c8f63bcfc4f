package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/chromaview/internal/chroma"
)

// ConnectParams are the connect form values. Empty fields fall back to the
// Chroma defaults.
type ConnectParams struct {
	URL      string
	Tenant   string
	Database string
	Auth     chroma.Auth
}

// WithDefaults fills empty fields.
func (p ConnectParams) WithDefaults() ConnectParams {
	if p.URL = strings.TrimSpace(p.URL); p.URL == "" {
		p.URL = chroma.DefaultURL
	}
	if p.Tenant = strings.TrimSpace(p.Tenant); p.Tenant == "" {
		p.Tenant = chroma.DefaultTenant
	}
	if p.Database = strings.TrimSpace(p.Database); p.Database == "" {
		p.Database = chroma.DefaultDatabase
	}
	return p
}

// Connect runs create_client, health_check and check_tenant_and_database in
// order and stops at the first failure. The returned error carries the
// message to show on the connect form.
func Connect(ctx context.Context, b *Bridge, p ConnectParams) (ConnectParams, error) {
	p = p.WithDefaults()

	args := Args{"url": p.URL}
	if p.Auth.Header != "" {
		args["authConfig"] = p.Auth
	}
	if res := Invoke[bool](ctx, b, CreateClient, args); !res.OK() {
		return p, errors.New(res.Err)
	}
	if res := Invoke[bool](ctx, b, HealthCheck, nil); !res.OK() {
		return p, errors.New(res.Err)
	}
	res := Invoke[bool](ctx, b, CheckTenantAndDatabase, Args{"tenant": p.Tenant, "database": p.Database})
	if !res.OK() {
		return p, errors.New(res.Err)
	}
	if !res.Value {
		return p, fmt.Errorf("%s %s not found", p.Tenant, p.Database)
	}
	return p, nil
}

package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
	"github.com/five82/chromaview/internal/config"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/prefs"
	"github.com/five82/chromaview/internal/state"
	"github.com/five82/chromaview/internal/ui"
)

// Options configure the chromaview application. Non-empty connection fields
// override the config file and the last used connection.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/chromaview/prefs.toml
	EnvFile    string // empty uses .env in the working directory

	URL      string
	Tenant   string
	Database string
	LogFile  string
}

// Env is the set of long-lived dependencies shared by the TUI and the
// headless subcommands.
type Env struct {
	Config   config.Config
	Prefs    *prefs.Store
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Bridge   *bridge.Bridge

	opts Options
}

// Setup loads configuration and builds the logger, preferences store, metrics
// registry and command bridge.
func Setup(opts Options) (*Env, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	b := bridge.New(bridge.Options{
		Timeout: cfg.RequestTimeout(),
		Metrics: bridge.NewMetrics(reg),
		Logger:  logger.Named("bridge"),
	})

	return &Env{
		Config:   cfg,
		Prefs:    prefs.Open(opts.PrefsPath),
		Logger:   logger,
		Registry: reg,
		Bridge:   b,
		opts:     opts,
	}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	_ = e.Logger.Sync()
}

// ConnectParams resolves the initial connection. Flags win, then values set
// in the config file or environment, then the last used connection, then the
// Chroma defaults.
func (e *Env) ConnectParams() bridge.ConnectParams {
	lastURL, lastTenant, lastDatabase := e.Prefs.LastConnection()
	return bridge.ConnectParams{
		URL:      pick(e.opts.URL, e.Config.URL, chroma.DefaultURL, lastURL),
		Tenant:   pick(e.opts.Tenant, e.Config.Tenant, chroma.DefaultTenant, lastTenant),
		Database: pick(e.opts.Database, e.Config.Database, chroma.DefaultDatabase, lastDatabase),
		Auth:     e.Config.Auth.Credentials(),
	}
}

// pick returns flag if set, configured if it differs from the built-in
// default, else last, else configured.
func pick(flag, configured, builtin, last string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if configured != "" && configured != builtin {
		return configured
	}
	if v := strings.TrimSpace(last); v != "" {
		return v
	}
	return configured
}

// Run boots the chromaview TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	logger := env.Logger
	ctx = logging.ContextWithLogger(ctx, logger)
	logger.Info("starting chromaview", zap.String("config_url", env.Config.URL))

	if addr := env.Config.MetricsAddr; addr != "" {
		srv, err := StartMetricsServer(ctx, addr, env.Registry)
		if err != nil {
			return err
		}
		defer StopMetricsServer(ctx, srv)
	}

	store := &state.Store{}
	StartHeartbeat(ctx, store, env.Bridge, env.Config.HealthInterval())

	return ui.Run(ui.Options{
		Context:   ctx,
		Bridge:    env.Bridge,
		Store:     store,
		Prefs:     env.Prefs,
		Connect:   env.ConnectParams(),
		PageSize:  env.Config.PageSize,
		LogPath:   env.Config.LogFile,
		ThemeFile: env.Config.ThemeFile,
	})
}

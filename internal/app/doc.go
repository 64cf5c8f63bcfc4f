// Package app is chromaview's composition root.
//
// # Overview
//
// Setup turns command-line options into the long-lived dependencies every
// entry point needs: the validated config, the zap logger, the preferences
// store, a Prometheus registry and the command bridge. Run adds the session
// store, the heartbeat monitor and the optional metrics endpoint, then hands
// everything to the TUI.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> Setup()              config, logger, prefs, bridge
//	       ├─────> StartMetricsServer() only when metrics_addr is set
//	       ├─────> state.Store{}        session state
//	       ├─────> StartHeartbeat()     background health checks
//	       └─────> ui.Run()             TUI (blocks)
//
// # Heartbeat
//
// StartHeartbeat issues health_check through the bridge once the session is
// connected and records each outcome with a state.Heartbeat action. After a
// failure the next check waits base×2^failures, capped at 30 seconds, so a
// server that went away is not hammered.
//
// # Connection Defaults
//
// ConnectParams pre-fills the connect screen. Explicit flags win, then values
// set in the config file or CHROMA_* environment, then the last connection
// saved in preferences, then the Chroma defaults.
//
// # Headless Commands
//
// Env.Dial runs the same connect sequence as the connect screen without a
// window. ListCollections, ResetDatabase and ServerVersion build on it for
// the collections, reset and version subcommands.
//
// # Metrics
//
// When metrics_addr is configured a chi router serves /metrics from the
// bridge's registry and /healthz for liveness. It shuts down with the TUI.
package app

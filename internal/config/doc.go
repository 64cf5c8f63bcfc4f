// Package config loads chromaview's connection and runtime settings.
//
// # Overview
//
// Settings come from a TOML file, struct-tag defaults, an optional .env file,
// and CHROMA_* environment variables. The result is validated once at startup
// and passed down as an immutable Config value.
//
// # Resolution Order
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/chromaview/config.toml
//  3. If the file doesn't exist, start from an empty Config
//  4. Fill every zero-valued field from its `default` tag
//  5. Apply CHROMA_URL, CHROMA_TENANT, CHROMA_DATABASE and CHROMA_TOKEN
//  6. Validate with the `validate` tags
//
// LoadDotEnv can be called before Load to pull variables from a .env file.
// Variables already present in the environment win over the file.
//
// # TOML Format
//
//	url = "http://localhost:8000"
//	tenant = "default_tenant"
//	database = "default_database"
//	page_size = 25
//	request_timeout_sec = 10
//	health_interval_sec = 5
//	log_file = "~/.local/state/chromaview/chromaview.log"
//	log_level = "info"
//	theme_file = "~/.config/chromaview/theme.yaml"
//	metrics_addr = "127.0.0.1:9464"
//
//	[auth]
//	provider = "token"          # none | token | basic
//	token = "ck-..."
//	token_header = "X-Chroma-Token"
//
// Every field is optional. Tilde expansion is performed for log_file and
// theme_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Constraint violations such as an unsupported page size
package config

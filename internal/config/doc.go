// Package config manages application configuration for the Erudite app host.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts)
//   - StorageConfig: persistence medium (memory, sqlite, surrealdb)
//   - DatabaseConfig: SurrealDB connection settings
//   - StoreConfig: collection limits (membership cap)
//   - PollerConfig: polling fallback for change propagation
//   - MediaConfig: image upload limits
//
// # Environment Variables
//
//	SERVER_PORT        - HTTP server port (default: 8080)
//	STORAGE_DRIVER     - memory, sqlite or surrealdb (default: sqlite)
//	STORAGE_PATH       - SQLite file path (default: ./erudite.db)
//	STORAGE_QUOTA_BYTES- total bytes the memory medium accepts (default: 5MiB)
//	WATCH_INTERVAL     - cross-process change watch interval (default: 500ms)
//	MEMBERSHIP_LIMIT   - maximum joined communities (default: 7)
//	POLL_ENABLED       - enable the polling fallback (default: true)
//	POLL_INTERVAL      - polling fallback interval (default: 1s)
//	MAX_IMAGE_BYTES    - largest accepted avatar/post image (default: 2MiB)
package config

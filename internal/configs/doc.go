// Package configs manages user settings and configuration for edtoken.
//
// # Settings
//
// UserEdtokenSettings is initialized at startup from the XDG locations:
//   - ConfigDir: $XDG_CONFIG_HOME/edtoken (config.toml lives here)
//   - DataDir: $XDG_DATA_HOME/edtoken (profile store and audit log)
//   - CacheDir: $XDG_CACHE_HOME/edtoken/wallets (wallet cache copies)
//
// # Configuration
//
// The effective Config is merged from three sources, highest priority first:
//
//  1. Environment variables (EDTOKEN_PROFILES, EDTOKEN_CACHE_DIR, EDTOKEN_SHELL,
//     EDTOKEN_AUDIT_LOG, EDTOKEN_AUDIT_PATH)
//  2. config.toml in ConfigDir
//  3. Built-in defaults
//
// A missing config.toml is fine. Unknown keys in it are an error.
//
// # Wallet Cache Paths
//
// Config.CachePath maps a wallet file to <cache_dir>/<hash>-<basename>, where
// hash is the first 16 hex digits of the SHA-256 of the absolute path. Files
// that share a basename get separate slots.
package configs

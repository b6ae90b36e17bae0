// Package audit provides audit trail logging for edtoken operations.
//
// When audit_log is enabled in the config, every mutating operation (add,
// set, remove, wallet open/close) and every exec is recorded. The log says
// who touched which profile key and when; it never contains a value, a
// template expansion, or a passphrase.
//
// # Log Format
//
// The audit log is JSON Lines (one JSON object per line) at audit_path,
// by default:
//
//	$XDG_DATA_HOME/edtoken/audit.jsonl
//
// Each entry contains:
//   - A random UUID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Local username and hostname
//   - Operation name
//   - Profile, key, and wallet file when they apply
//
// # Usage
//
//	entry := audit.LogWithUser(audit.OpSet)
//	entry.Profile = "work"
//	entry.Key = "token"
//	audit.Log(cfg.AuditPath, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
package audit

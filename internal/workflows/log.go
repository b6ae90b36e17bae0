package workflows

import (
	"context"

	"github.com/thecoblack/edtoken/internal/audit"
	"github.com/thecoblack/edtoken/internal/configs"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of most recent entries to return. 0 means no limit.
	Limit int

	// Profile filters entries by profile name.
	Profile string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// Enabled mirrors the audit_log setting. Entries may still exist from an
	// earlier run with auditing on.
	Enabled bool
	Path    string
}

// Log reads the audit log.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(cfg.AuditPath)
	if err != nil {
		return nil, err
	}

	if opts.Profile != "" {
		filtered := make([]audit.Entry, 0, len(entries))
		for _, e := range entries {
			if e.Profile == opts.Profile {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	return &LogResult{
		Entries: audit.Tail(entries, opts.Limit),
		Enabled: cfg.AuditLog,
		Path:    cfg.AuditPath,
	}, nil
}

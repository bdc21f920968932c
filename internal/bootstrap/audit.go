package bootstrap

import "context"

// AuditLog is one operational audit event (startup, shutdown, config
// reload). Business-level auditing lives in the modules themselves.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

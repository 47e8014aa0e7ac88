package bootstrap

import "context"

// AuditLog adalah entri jejak operasional level aplikasi (bukan access log per request).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

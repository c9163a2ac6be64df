package core

import "context"

type contextKey string

const (
	ctxKeySessionID contextKey = "session_id"
	ctxKeyClientIP  contextKey = "client_ip"
)

// ContextWithSessionID attaches the caller's session id.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// ContextWithClientIP attaches the resolved client address.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

// SessionIDFromContext returns the session id, or "" if none was attached.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// ClientIPFromContext returns the client address, or "" if none was attached.
func ClientIPFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return v
	}
	return ""
}

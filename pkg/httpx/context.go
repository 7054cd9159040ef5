package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
)

// WithSubject records the authenticated subject so per-user middleware such
// as subject-keyed rate limits can use it.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, subject)
}

// SubjectFromContext returns the subject set by WithSubject, or "".
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeyUserID).(string)
	return s
}

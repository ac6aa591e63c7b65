package log

import (
	"context"
	"fmt"
	"sort"

	saltLog "github.com/goto/salt/log"
)

// Logger takes a message followed by alternating key/value pairs
type Logger interface {
	Debug(ctx context.Context, msg string, kv ...interface{})
	Info(ctx context.Context, msg string, kv ...interface{})
	Warn(ctx context.Context, msg string, kv ...interface{})
	Error(ctx context.Context, msg string, kv ...interface{})
}

type fieldsKey struct{}

// CtxLogger writes through a salt logger and appends the fields attached to ctx with WithFields
type CtxLogger struct {
	log saltLog.Logger
}

func NewCtxLoggerWithSaltLogger(log saltLog.Logger) *CtxLogger {
	return &CtxLogger{log: log}
}

// NewCtxLogger builds a logrus backed logger at the given level
func NewCtxLogger(level string) *CtxLogger {
	return NewCtxLoggerWithSaltLogger(saltLog.NewLogrus(saltLog.LogrusWithLevel(level)))
}

func (l *CtxLogger) Debug(ctx context.Context, msg string, kv ...interface{}) {
	l.log.Debug(msg, withFields(ctx, kv)...)
}

func (l *CtxLogger) Info(ctx context.Context, msg string, kv ...interface{}) {
	l.log.Info(msg, withFields(ctx, kv)...)
}

func (l *CtxLogger) Warn(ctx context.Context, msg string, kv ...interface{}) {
	l.log.Warn(msg, withFields(ctx, kv)...)
}

func (l *CtxLogger) Error(ctx context.Context, msg string, kv ...interface{}) {
	l.log.Error(msg, withFields(ctx, kv)...)
}

func withFields(ctx context.Context, kv []interface{}) []interface{} {
	if ctx == nil {
		return kv
	}
	fields, ok := ctx.Value(fieldsKey{}).(map[string]interface{})
	if !ok || len(fields) == 0 {
		return kv
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]interface{}, 0, len(kv)+2*len(keys))
	out = append(out, kv...)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

// WithFields returns a copy of ctx whose log entries carry the given key/value pairs.
// Later calls override earlier values of the same key. A dangling key is logged with a nil value.
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	existing, _ := ctx.Value(fieldsKey{}).(map[string]interface{})
	fields := make(map[string]interface{}, len(existing)+len(kv)/2)
	for k, v := range existing {
		fields[k] = v
	}
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var value interface{}
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fields[key] = value
	}
	return context.WithValue(ctx, fieldsKey{}, fields)
}

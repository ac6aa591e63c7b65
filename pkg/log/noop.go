package log

import "context"

// Noop discards every entry
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) Debug(context.Context, string, ...interface{}) {}
func (*Noop) Info(context.Context, string, ...interface{})  {}
func (*Noop) Warn(context.Context, string, ...interface{})  {}
func (*Noop) Error(context.Context, string, ...interface{}) {}

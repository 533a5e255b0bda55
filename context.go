/*
Package vault defines all common interfaces to tie together
the various subpackages of the multisignature vault, as well as
implementations of some of the simpler components
(when interfaces would be too much overhead).

We pass context through context.Context between
app, middleware, and handlers. To do so, vault defines
some common keys to store info, such as the authenticated caller
and the call height. Each extension may add its own keys to
enrich the context with specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set
to avoid lower-level modules overwriting the value
(eg. height, caller)
*/
package vault

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the vault module

const (
	contextKeyHeight contextKey = iota
	contextKeyLogger
	contextKeyCaller
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithHeight sets the sequence number of the call that is being processed.
// It panics if the height was already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the call sequence number as set by the runtime
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithCaller sets the authenticated principal that issued the call.
// The runtime is responsible for authenticating it, the vault trusts it.
// It panics if a caller was already set.
func WithCaller(ctx Context, caller Address) Context {
	if _, ok := GetCaller(ctx); ok {
		panic("Caller already set")
	}
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the authenticated principal of the call, if any.
func GetCaller(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok && len(val) > 0
}

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

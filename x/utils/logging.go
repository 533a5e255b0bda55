package utils

import (
	"time"

	"github.com/iov-one/vault"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ vault.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx vault.Context, store vault.KVStore, msg vault.Msg, next vault.Checker) (*vault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, msg)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msg, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx vault.Context, store vault.KVStore, msg vault.Msg, next vault.Deliverer) (*vault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, msg)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msg, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx vault.Context, start time.Time, msg vault.Msg, resLog string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := vault.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if msg != nil {
		logger = logger.With("path", msg.Path())
	}
	if caller, ok := vault.GetCaller(ctx); ok {
		logger = logger.With("caller", caller)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	switch {
	case err != nil && lowPrio:
		logger.Info(resLog, "err", err)
	case err != nil:
		logger.Error(resLog, "err", err)
	case lowPrio:
		logger.Debug(resLog)
	default:
		logger.Info(resLog)
	}
}

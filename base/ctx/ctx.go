package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/settlement/base/log"
)

const callerKey = "caller"

type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

// WithCaller tags the context with the authenticated account issuing the call.
func WithCaller(parent Ctx, caller string) Ctx {
	return WithValue(parent, callerKey, caller)
}

// Caller returns the account set by WithCaller.
func Caller(c Ctx) (string, bool) {
	caller, ok := c.Value(callerKey).(string)
	return caller, ok && len(caller) > 0
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

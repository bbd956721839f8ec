package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	apperrors "stepone/internal/platform/errors"
)

var raise = func(sig syscall.Signal) {
	_ = syscall.Kill(os.Getpid(), sig)
}

// notifyContext ends ctx on interrupt or suspend. Interrupt and terminate
// cancel the session; suspend and hangup mean the user left, so they abandon
// it. A caught suspend is re-raised by the returned stop func once the
// session has been abandoned, so ctrl+z still stops the process.
func notifyContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGHUP)
	var suspended atomic.Bool
	go func() {
		select {
		case sig := <-sigs:
			switch sig {
			case syscall.SIGTSTP:
				suspended.Store(true)
				cancel(apperrors.ErrSessionAbandoned)
			case syscall.SIGHUP:
				cancel(apperrors.ErrSessionAbandoned)
			default:
				cancel(apperrors.ErrSessionCancelled)
			}
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigs)
		cancel(nil)
		if suspended.Load() {
			signal.Reset(syscall.SIGTSTP)
			raise(syscall.SIGTSTP)
		}
	}
}

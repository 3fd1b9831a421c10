package logger

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// ReloadOnSIGHUP reopens the log file every time the process receives SIGHUP.
func ReloadOnSIGHUP(l *zap.Logger, fileSyncer *ReopenableWriteSyncer) {
	if fileSyncer == nil {
		return
	}
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP)
	go func() {
		for range c {
			l.Info("receive logrotate SIGHUP, reloading log file")
			if err := fileSyncer.Reload(); err != nil {
				l.Error("failed to reload log file", zap.Error(err))
			} else {
				l.Info("successfully reloaded log file")
			}
		}
	}()
}

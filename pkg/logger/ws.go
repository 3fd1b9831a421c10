package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// ReopenableWriteSyncer is a zapcore.WriteSyncer over a file that can be reopened in place,
// so logrotate can move the file away and signal the process with SIGHUP.
type ReopenableWriteSyncer struct {
	path string
	cur  atomic.Pointer[os.File]
	mu   sync.Mutex
}

func NewReopenableWriteSyncer(path string) (*ReopenableWriteSyncer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("NewReopenableWriteSyncer: %w", err)
		}
	}
	ws := &ReopenableWriteSyncer{
		path: path,
	}
	if err := ws.Reload(); err != nil {
		return nil, err
	}
	return ws, nil
}

func (ws *ReopenableWriteSyncer) Reload() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	file, err := os.OpenFile(ws.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("ReopenableWriteSyncer.Reload: %w", err)
	}
	if old := ws.cur.Swap(file); old != nil {
		return old.Close()
	}
	return nil
}

func (ws *ReopenableWriteSyncer) Write(p []byte) (int, error) {
	return ws.cur.Load().Write(p)
}

func (ws *ReopenableWriteSyncer) Sync() error {
	return ws.cur.Load().Sync()
}

func (ws *ReopenableWriteSyncer) Close() error {
	return ws.cur.Load().Close()
}

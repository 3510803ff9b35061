// Package serverlog keeps one append-only activity log per guild.
// Logs are write-only from the bot's point of view; nothing reads them
// back.
package serverlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Registry caches one file-backed logger per guild id. Loggers are
// created on first use and live for the process lifetime.
type Registry struct {
	mu      sync.Mutex
	dir     string
	loggers map[string]*log.Logger
}

func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, loggers: make(map[string]*log.Logger)}
}

func (r *Registry) logger(guildID string) (*log.Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[guildID]; ok {
		return l, nil
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(
		filepath.Join(r.dir, guildID+".log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return nil, err
	}
	l := log.New(f, "", 0)
	r.loggers[guildID] = l
	return l, nil
}

// Log appends one timestamped event line to the guild's log file.
func (r *Registry) Log(guildID, format string, args ...interface{}) {
	if guildID == "" {
		return
	}
	l, err := r.logger(guildID)
	if err != nil {
		log.Printf("không mở được log server %s: %v", guildID, err)
		return
	}
	l.Printf("[%s] %s", now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

var now = time.Now

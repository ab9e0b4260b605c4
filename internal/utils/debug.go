package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var (
	debugMu   sync.Mutex
	debugFile *os.File
	debugDir  string
)

// ConfigureDebug directs debug output to a timestamped file under dir.
// Until this is called, Debug messages are dropped.
func ConfigureDebug(dir string) {
	debugMu.Lock()
	defer debugMu.Unlock()

	if debugFile != nil {
		_ = debugFile.Close()
		debugFile = nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	name := fmt.Sprintf("debug-%s.log", time.Now().Format("20060102-150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return
	}
	debugFile = f
	debugDir = dir
}

// Debug writes a message to the debug log file.
func Debug(format string, args ...any) {
	debugMu.Lock()
	defer debugMu.Unlock()

	if debugFile == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(debugFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	_ = debugFile.Sync() // Flush immediately
}

// CleanupLogs removes old debug logs, keeping the most recent `keep` files.
func CleanupLogs(keep int) {
	debugMu.Lock()
	dir := debugDir
	debugMu.Unlock()

	if dir == "" || keep < 0 {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".log" {
			logs = append(logs, e.Name())
		}
	}
	// Timestamped names sort chronologically
	sort.Strings(logs)

	for i := 0; i < len(logs)-keep; i++ {
		_ = os.Remove(filepath.Join(dir, logs[i]))
	}
}

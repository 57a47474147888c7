// Package logger captures panics from any dayloop command into crash log
// files under the project root, so a broken state file or a planner bug can
// be reported with a stack trace instead of a bare panic line.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// crashLogDir is the directory for crash logs relative to the project root.
	crashLogDir = "crash_logs"

	// maxCrashLogs is the number of crash logs kept before the oldest is removed.
	maxCrashLogs = 10
)

// crashContext carries the command metadata a crash log is stamped with.
type crashContext struct {
	mu       sync.RWMutex
	command  string
	version  string
	basePath string
}

var globalContext = &crashContext{}

// SetBasePath sets where crash logs are written (the .dayloop directory).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion records the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the command line currently executing.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// CrashLog is one captured panic.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers a panic, writes a crash log, prints where it went,
// and exits nonzero. Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log := newCrashLog(r)
	if err := writeCrashLog(log); err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\ndayloop hit an unexpected error: %v\n", r)
	fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n", crashLogPath(log.Timestamp))
	os.Exit(1)
}

func newCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := crashLogsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}
	if err := cleanOldCrashLogs(dir); err != nil {
		// Non-fatal, the new log still gets written.
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}
	path := crashLogPath(log.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

func crashLogsDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".dayloop"
	}
	return filepath.Join(basePath, crashLogDir)
}

func crashLogPath(t time.Time) string {
	return filepath.Join(crashLogsDir(), fmt.Sprintf("crash_%s.log", t.Format("20060102_150405")))
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("-", 80)

	sb.WriteString("DAYLOOP CRASH LOG\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", log.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Version:   %s\n", log.Version))
	sb.WriteString(fmt.Sprintf("Command:   %s\n", log.Command))
	sb.WriteString(fmt.Sprintf("Go:        %s\n", log.GoVersion))
	sb.WriteString(fmt.Sprintf("OS/Arch:   %s/%s\n", log.OS, log.Arch))
	sb.WriteString(rule + "\n")
	sb.WriteString("PANIC\n")
	sb.WriteString(log.PanicValue + "\n")
	sb.WriteString(rule + "\n")
	sb.WriteString("STACK TRACE\n")
	sb.WriteString(log.StackTrace)
	sb.WriteString(rule + "\n")
	return sb.String()
}

// cleanOldCrashLogs keeps the maxCrashLogs most recent logs. ReadDir returns
// entries sorted by name, and the timestamped names sort oldest first.
func cleanOldCrashLogs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var logs []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, e)
		}
	}
	if len(logs) <= maxCrashLogs {
		return nil
	}

	for _, e := range logs[:len(logs)-maxCrashLogs] {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", e.Name(), err)
		}
	}
	return nil
}

// ListCrashLogs returns the paths of all stored crash logs.
func ListCrashLogs() ([]string, error) {
	dir := crashLogsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}

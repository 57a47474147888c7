package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatCrashLog(t *testing.T) {
	log := CrashLog{
		Timestamp:  time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		Version:    "0.3.0",
		Command:    "dayloop add",
		PanicValue: "runtime error: index out of range",
		StackTrace: "goroutine 1 [running]:\nmain.main()\n",
		GoVersion:  "go1.24",
		OS:         "linux",
		Arch:       "amd64",
	}
	out := formatCrashLog(log)
	for _, want := range []string{"dayloop add", "index out of range", "goroutine 1", "0.3.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted log missing %q", want)
		}
	}
}

func TestWriteAndListCrashLogs(t *testing.T) {
	SetBasePath(t.TempDir())
	SetVersion("test")
	SetCommand("dayloop watch")
	t.Cleanup(func() { SetBasePath(""); SetVersion(""); SetCommand("") })

	log := newCrashLog("boom")
	if log.Command != "dayloop watch" || log.PanicValue != "boom" {
		t.Fatalf("unexpected crash log: %+v", log)
	}
	if err := writeCrashLog(log); err != nil {
		t.Fatalf("writeCrashLog: %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 crash log, got %d", len(logs))
	}
	content, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatalf("read crash log: %v", err)
	}
	if !strings.Contains(string(content), "boom") {
		t.Error("crash log should contain the panic value")
	}
}

func TestCleanOldCrashLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < maxCrashLogs+3; i++ {
		name := filepath.Join(dir, time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("crash_20060102_150405.log"))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		t.Fatalf("cleanOldCrashLogs: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != maxCrashLogs {
		t.Errorf("expected %d logs after cleanup, got %d", maxCrashLogs, len(entries))
	}
}

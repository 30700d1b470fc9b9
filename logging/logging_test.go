package logging

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	closer, err := Setup(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if closer != nil {
		t.Error("Expected nil closer when debug=false")
		closer.Close()
	}

	if stdlog.Writer() != io.Discard {
		t.Errorf("Expected std log output to be io.Discard, got %v", stdlog.Writer())
	}
	if log.Logger.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger, got level %v", log.Logger.GetLevel())
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	closer, err := Setup(Options{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if closer == nil {
		t.Fatal("Expected non-nil closer when debug=true")
	}
	defer closer.Close()

	logPath := filepath.Join(dir, LogFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Expected log file to be created")
	}

	log.Debug().Str("probe", "value").Msg("test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, LogFileName)

	// Write just over the limit
	if err := os.WriteFile(logPath, make([]byte, MaxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	closer, err := Setup(Options{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != LogFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > MaxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", MaxLogSize, info.Size())
	}
}

func TestSetup_NoStdoutStderr(t *testing.T) {
	closer, err := Setup(Options{Dir: t.TempDir(), Debug: true})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	output := stdlog.Writer()
	if output == os.Stdout {
		t.Error("Log output should not be stdout")
	}
	if output == os.Stderr {
		t.Error("Log output should not be stderr")
	}
}

func TestSetup_BadLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestSetup_Console(t *testing.T) {
	closer, err := Setup(Options{Console: true, Level: "warn"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if closer != nil {
		t.Error("Console mode opens no file")
	}
	if log.Logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %v", log.Logger.GetLevel())
	}
}

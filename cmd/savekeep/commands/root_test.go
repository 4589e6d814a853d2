package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// keepDefaultLogger restores slog's default logger after the test.
func keepDefaultLogger(t *testing.T) {
	t.Helper()

	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"SAVEKEEP_DEBUG=1", "1", slog.LevelDebug},
		{"SAVEKEEP_DEBUG=true", "true", slog.LevelDebug},
		{"SAVEKEEP_DEBUG=2", "2", logging.LevelTrace},
		{"SAVEKEEP_DEBUG=0", "0", slog.LevelWarn},
		{"SAVEKEEP_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled")
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	t.Setenv(debugEnv, "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	quiet = true

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	verbosity = 1
	quiet = true

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error when both quiet and verbose are set")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if exitErr.Err == nil || !strings.Contains(exitErr.Err.Error(), "--quiet and --verbose") {
		t.Errorf("Err = %v, want the conflict described", exitErr.Err)
	}
	if exitErr.Code != errors.ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitUser)
	}
}

func TestSetupLogging_InvalidFormat(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	logFormat = "xml"
	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	logFile = filepath.Join(t.TempDir(), "savekeep.log")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	slog.Info("tee check", "k", "v")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"tee check"`) {
		t.Errorf("log file = %q, want JSON record", data)
	}
}

func TestSetupLogging_LogFileClosedOnFinalize(t *testing.T) {
	isolate(t)
	keepDefaultLogger(t)

	logFile = filepath.Join(t.TempDir(), "savekeep.log")
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	f := logFileHandle
	if f == nil {
		t.Fatal("log file handle not recorded")
	}

	closeLogFile()

	if logFileHandle != nil {
		t.Error("handle still recorded after closeLogFile")
	}
	if _, err := f.Write([]byte("x")); err == nil {
		t.Error("log file still open after closeLogFile")
	}
	closeLogFile()
}

func TestResolveDirs(t *testing.T) {
	isolate(t)
	live := t.TempDir()
	store := t.TempDir()

	if _, err := execute(t, "--live", live, "--store", store, "config", "list"); err != nil {
		t.Fatalf("config list: %v", err)
	}
	if flags.LiveDir() != live {
		t.Errorf("LiveDir() = %q, want %q", flags.LiveDir(), live)
	}
	if flags.StoreDir() != store {
		t.Errorf("StoreDir() = %q, want %q", flags.StoreDir(), store)
	}
}

func TestResolveDirs_FromEnv(t *testing.T) {
	isolate(t)
	live := t.TempDir()
	t.Setenv("SAVEKEEP_LIVE_DIR", live)

	if _, err := execute(t, "config", "list"); err != nil {
		t.Fatalf("config list: %v", err)
	}
	if flags.LiveDir() != live {
		t.Errorf("LiveDir() = %q, want %q", flags.LiveDir(), live)
	}
	if !strings.HasSuffix(flags.StoreDir(), "UNDERTALE-SAVEfiles") {
		t.Errorf("StoreDir() = %q, want default store", flags.StoreDir())
	}
}

func TestResolveDirs_RejectsOverlap(t *testing.T) {
	isolate(t)
	live := t.TempDir()

	_, err := execute(t, "--live", live, "--store", filepath.Join(live, "saves"), "config", "list")
	if err == nil {
		t.Fatal("expected error for store inside live directory")
	}
	if !errors.Is(err, config.ErrDirsOverlap) {
		t.Errorf("error = %v, want ErrDirsOverlap", err)
	}
}

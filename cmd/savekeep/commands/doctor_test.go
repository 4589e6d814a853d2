package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/restore"
)

// doctorDirs returns a live directory holding one save file and a store
// path that does not exist yet.
func doctorDirs(t *testing.T) (live, store string) {
	t.Helper()

	base := t.TempDir()
	live = filepath.Join(base, "UNDERTALE")
	if err := os.MkdirAll(live, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(live, "file0"), []byte("save"), 0o644); err != nil {
		t.Fatal(err)
	}
	return live, filepath.Join(base, "UNDERTALE-SAVEfiles")
}

func TestDoctor_Healthy(t *testing.T) {
	isolate(t)
	live, store := doctorDirs(t)
	if err := os.Mkdir(store, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--live", live, "--store", store, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	for _, want := range []string{"live-dir", "store-dir", "restore-leftover", "store-lock", "config", "0 warnings, 0 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestDoctor_FixCreatesStore(t *testing.T) {
	isolate(t)
	live, store := doctorDirs(t)

	out, err := execute(t, "--live", live, "--store", store, "doctor", "--fix")
	if err != nil {
		t.Fatalf("doctor --fix: %v\n%s", err, out)
	}
	if !strings.Contains(out, "fixed "+store) {
		t.Errorf("doctor output does not report the fix:\n%s", out)
	}
	if info, err := os.Stat(store); err != nil || !info.IsDir() {
		t.Errorf("store not created: %v", err)
	}
}

func TestDoctor_StaleTempIsWarning(t *testing.T) {
	isolate(t)
	live, store := doctorDirs(t)
	if err := os.Mkdir(restore.TempPath(live), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--live", live, "--store", store, "doctor")
	if err == nil {
		t.Fatalf("doctor succeeded with a stale temp directory:\n%s", out)
	}
	if code := exitCode(t, err); code != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", code, errors.ExitUser)
	}
	if !strings.Contains(out, "hint: inspect it before removing") {
		t.Errorf("doctor output missing hint:\n%s", out)
	}
}

func TestDoctor_ErrorsExitSystem(t *testing.T) {
	isolate(t)
	live, store := doctorDirs(t)
	if err := os.WriteFile(store, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "--live", live, "--store", store, "doctor")
	if err == nil {
		t.Fatal("doctor succeeded with a file as store")
	}
	if code := exitCode(t, err); code != errors.ExitSystem {
		t.Errorf("exit code = %d, want %d", code, errors.ExitSystem)
	}
}

func TestDoctor_JSON(t *testing.T) {
	isolate(t)
	live, store := doctorDirs(t)

	out, err := execute(t, "--live", live, "--store", store, "doctor", "--json")
	if err != nil {
		t.Fatalf("doctor --json: %v", err)
	}

	var got struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary struct {
			Info int `json:"info"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got.Results) != 5 {
		t.Errorf("got %d results, want 5", len(got.Results))
	}
	// Missing store and missing config file.
	if got.Summary.Info != 2 {
		t.Errorf("info = %d, want 2", got.Summary.Info)
	}
}

func TestDoctor_ReportsConfigLoadError(t *testing.T) {
	dir := isolate(t)
	live, store := doctorDirs(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("version: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--live", live, "--store", store, "doctor")
	if err == nil {
		t.Fatal("doctor succeeded with an invalid config")
	}
	if !strings.Contains(out, "configuration could not be loaded") {
		t.Errorf("doctor output missing config error:\n%s", out)
	}
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// AppName names savekeep's own config directory.
const AppName = "savekeep"

// DefaultApp is the application whose saves are managed when none is
// configured.
const DefaultApp = "UNDERTALE"

// StoreSuffix is appended to the application name to form the default
// backup store directory name, next to the live save directory.
const StoreSuffix = "-SAVEfiles"

// LockFileName is the advisory lock file kept in the store root.
const LockFileName = ".savekeep.lock"

// ConfigDirEnv overrides the config directory when set.
const ConfigDirEnv = "SAVEKEEP_CONFIG_DIR"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" if it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns savekeep's config directory: $SAVEKEEP_CONFIG_DIR if
// set, otherwise <ConfigHome>/savekeep.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultLiveDir returns where app keeps its saves by default:
// <DataHome>/<app>. An empty app means DefaultApp.
func DefaultLiveDir(app string) string {
	if app == "" {
		app = DefaultApp
	}
	return filepath.Join(DataHome(), app)
}

// DefaultStoreDir returns the default backup store for app:
// <DataHome>/<app>-SAVEfiles. An empty app means DefaultApp.
func DefaultStoreDir(app string) string {
	if app == "" {
		app = DefaultApp
	}
	return filepath.Join(DataHome(), app+StoreSuffix)
}

// LockFile returns the lock file path inside storeDir.
func LockFile(storeDir string) string {
	return filepath.Join(storeDir, LockFileName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Other paths, and "~user" forms, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home := Home()
	if home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}

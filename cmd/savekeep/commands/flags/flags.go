// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (backup).
package flags

var (
	// liveDir is the resolved live save directory.
	liveDir string

	// storeDir is the resolved backup store root.
	storeDir string
)

// LiveDir returns the live save directory resolved from --live and the
// configuration.
func LiveDir() string {
	return liveDir
}

// SetLiveDir sets the live save directory.
// This is used by the root command after resolving flags and config,
// and by tests.
func SetLiveDir(dir string) {
	liveDir = dir
}

// StoreDir returns the backup store root resolved from --store and the
// configuration.
func StoreDir() string {
	return storeDir
}

// SetStoreDir sets the backup store root.
func SetStoreDir(dir string) {
	storeDir = dir
}

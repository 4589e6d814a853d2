// Package backup manages a store of named directory snapshots.
//
// A store is a root directory whose immediate subdirectories are backups.
// The backup's name is its directory name; nothing else is recorded on
// disk, so a store can be inspected and edited with ordinary file tools.
//
//	~/.local/share/UNDERTALE-SAVEfiles/
//	├── before-boss/
//	├── save2/
//	└── save10/
//
// # Creating Backups
//
// [Store.Create] copies a source directory into the store. It refuses to
// overwrite an existing name and, unless [Force] is passed, refuses to
// store content identical to an existing backup:
//
//	store := backup.NewStore(storeDir)
//	b, err := store.Create(liveDir, "before-boss")
//	if name, ok := backup.ConflictingBackup(err); ok {
//	    // identical to name; retry with backup.Force() to save anyway
//	}
//
// Content identity is decided by [fingerprint.Dir].
//
// # Listing
//
// [Store.List] returns names in natural order, so "save2" precedes
// "save10". [Store.Backups] adds file counts, sizes and times.
//
// # Errors
//
// Every failure is an [*OpError] whose Kind is one of the package's
// sentinel errors, for example [ErrNameConflict] or [ErrCopyFailed].
// Use errors.Is to test the kind.
package backup

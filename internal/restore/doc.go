// Package restore replaces a live directory with the contents of a backup.
//
// A restore never leaves the live directory half written. The live tree is
// first renamed to a sibling named "temp_backup_<base>", then the backup is
// copied into place. If the copy fails the partial copy is removed and the
// original tree is renamed back. Only after a successful copy is the
// sibling removed:
//
//	START ──rename──▶ LIVE_RENAMED ──copy──▶ BACKUP_COPIED ──cleanup──▶ DONE
//	                       │
//	                       └──copy fails──▶ ROLLED_BACK
//
// At every point after the rename, the live path or the sibling holds a
// complete tree.
//
// [Engine.MissingFiles] reports which live files a restore would discard,
// so a caller can warn before calling [Engine.Restore].
package restore

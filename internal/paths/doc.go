// Package paths resolves savekeep's default locations.
//
// The package wraps github.com/adrg/xdg so defaults follow each operating
// system's conventions. By default the managed application's saves live
// in the data home, with the backup store beside them:
//
//	~/.local/share/UNDERTALE/            live save directory
//	~/.local/share/UNDERTALE-SAVEfiles/  backup store
//
// savekeep's own configuration lives in <ConfigHome>/savekeep, or in
// $SAVEKEEP_CONFIG_DIR when that is set.
package paths

// Package config provides configuration management for the savekeep CLI.
//
// # Configuration File
//
// The configuration file is named config.yaml (or config.toml) and is
// looked up in the current directory, then in ~/.config/savekeep/:
//
//	version: 1
//	app: UNDERTALE
//	live_dir: ~/games/undertale/saves   # optional
//	store_dir: /mnt/backup/undertale    # optional
//
// Every key can be overridden from the environment with the SAVEKEEP_
// prefix, for example SAVEKEEP_STORE_DIR. Command-line flags override
// both.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	live, store := cfg.ResolveLiveDir(), cfg.ResolveStoreDir()
//
// An empty live_dir or store_dir resolves to the application's default
// directory under the XDG data home.
//
// # Validation
//
// [Load] and [Write] validate automatically. [Validate] reports every
// problem at once:
//
//	for _, err := range config.Validate(cfg) {
//	    fmt.Println(err)
//	}
package config

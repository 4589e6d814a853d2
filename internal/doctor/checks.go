package doctor

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/fs"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/internal/restore"
)

// LiveDirCheck verifies the live save directory exists.
type LiveDirCheck struct {
	dir string
}

var _ Check = (*LiveDirCheck)(nil)

// NewLiveDirCheck creates a check for the live save directory.
func NewLiveDirCheck(dir string) *LiveDirCheck {
	return &LiveDirCheck{dir: dir}
}

func (c *LiveDirCheck) Name() string { return "live-dir" }
func (c *LiveDirCheck) Category() string { return "live" }

func (c *LiveDirCheck) Run() *CheckResult {
	res := &CheckResult{Path: c.dir, Details: map[string]any{}}

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err):
		res.Status = SeverityWarning
		res.Message = "live save directory does not exist"
		res.Hint = "run the game once, or point --live / live_dir at its save directory"
	case err != nil:
		res.Status = SeverityError
		res.Message = fmt.Sprintf("cannot stat live save directory: %v", err)
	case !info.IsDir():
		res.Status = SeverityError
		res.Message = "live save path is not a directory"
	default:
		files := fs.RegularFiles(fs.NewOSFS(), c.dir)
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("live save directory present (%d files)", len(files))
		res.Details["files"] = len(files)
	}
	return res
}

// StoreCheck verifies the backup store root is usable. A missing store is
// fixable by creating it.
type StoreCheck struct {
	dir string
	StoreFixer
}

var (
	_ Check = (*StoreCheck)(nil)
	_ Fixer = (*StoreCheck)(nil)
)

// NewStoreCheck creates a check for the backup store root.
func NewStoreCheck(dir string) *StoreCheck {
	return &StoreCheck{dir: dir, StoreFixer: StoreFixer{dir: dir}}
}

func (c *StoreCheck) Name() string { return "store-dir" }
func (c *StoreCheck) Category() string { return "store" }

func (c *StoreCheck) Run() *CheckResult {
	res := &CheckResult{Path: c.dir, Details: map[string]any{}}
	c.missing = false

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		info, statErr := os.Stat(c.dir)
		switch {
		case os.IsNotExist(statErr):
			c.missing = true
			res.Status = SeverityInfo
			res.Message = "backup store does not exist yet; it is created by the first backup"
			res.Fixable = true
			res.Hint = "savekeep doctor --fix creates it now"
		case statErr == nil && !info.IsDir():
			res.Status = SeverityError
			res.Message = "backup store path is not a directory"
		default:
			res.Status = SeverityError
			res.Message = fmt.Sprintf("cannot read backup store: %v", err)
		}
		return res
	}

	var stray []string
	count := 0
	for _, e := range entries {
		switch {
		case e.IsDir():
			count++
		case e.Name() != paths.LockFileName:
			stray = append(stray, e.Name())
		}
	}
	res.Details["backups"] = count

	if len(stray) > 0 {
		res.Status = SeverityInfo
		res.Message = fmt.Sprintf("backup store holds %d backup(s); %d other entries are ignored", count, len(stray))
		res.Details["ignored"] = stray
		return res
	}

	res.Status = SeverityPass
	res.Message = fmt.Sprintf("backup store holds %d backup(s)", count)
	return res
}

// StaleTempCheck looks for the sibling directory an interrupted restore
// leaves next to the live directory.
type StaleTempCheck struct {
	liveDir string
}

var _ Check = (*StaleTempCheck)(nil)

// NewStaleTempCheck creates a check for restore leftovers beside liveDir.
func NewStaleTempCheck(liveDir string) *StaleTempCheck {
	return &StaleTempCheck{liveDir: liveDir}
}

func (c *StaleTempCheck) Name() string { return "restore-leftover" }
func (c *StaleTempCheck) Category() string { return "live" }

func (c *StaleTempCheck) Run() *CheckResult {
	temp := restore.TempPath(c.liveDir)
	res := &CheckResult{Path: temp, Details: map[string]any{}}

	if _, err := os.Stat(temp); os.IsNotExist(err) {
		res.Status = SeverityPass
		res.Message = "no leftover from an interrupted restore"
		return res
	}

	files := fs.RegularFiles(fs.NewOSFS(), temp)
	res.Status = SeverityWarning
	res.Message = fmt.Sprintf("found leftover from an interrupted restore (%d files)", len(files))
	res.Details["files"] = len(files)
	res.Hint = "inspect it before removing: it may hold the save that was live before the restore. The next restore deletes it while the live directory exists."
	if _, err := os.Stat(c.liveDir); os.IsNotExist(err) {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("live directory is missing and an interrupted restore left %d files beside it", len(files))
		res.Hint = "rename " + temp + " back to " + c.liveDir + "; restore refuses to run until the live directory exists"
	}
	return res
}

// LockCheck reports whether another savekeep process holds the store lock.
type LockCheck struct {
	storeDir string
}

var _ Check = (*LockCheck)(nil)

// NewLockCheck creates a check for the store lock.
func NewLockCheck(storeDir string) *LockCheck {
	return &LockCheck{storeDir: storeDir}
}

func (c *LockCheck) Name() string { return "store-lock" }
func (c *LockCheck) Category() string { return "store" }

func (c *LockCheck) Run() *CheckResult {
	path := paths.LockFile(c.storeDir)
	res := &CheckResult{Path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		res.Status = SeverityPass
		res.Message = "store is not locked"
		return res
	}

	lock := flock.New(path)
	locked, err := lock.TryRLock()
	if err != nil {
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("cannot probe store lock: %v", err)
		return res
	}
	if !locked {
		res.Status = SeverityWarning
		res.Message = "another savekeep process is using the store"
		res.Hint = "wait for it to finish"
		return res
	}
	_ = lock.Unlock()

	res.Status = SeverityPass
	res.Message = "store is not locked"
	return res
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg     *config.Config
	file    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check for cfg, loaded from file ("" for
// defaults only).
func NewConfigCheck(cfg *config.Config, file string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file}
}

// WithLoadError records that loading the configuration failed with err.
// The check then reports err instead of validating cfg.
func (c *ConfigCheck) WithLoadError(err error) *ConfigCheck {
	c.loadErr = err
	return c
}

func (c *ConfigCheck) Name() string { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	res := &CheckResult{Path: c.file}

	if c.loadErr != nil || c.cfg == nil {
		res.Status = SeverityError
		res.Message = "configuration could not be loaded"
		if c.loadErr != nil {
			res.Problems = []string{c.loadErr.Error()}
		}
		res.Hint = "savekeep config path shows which file is read"
		return res
	}

	errs := config.Validate(c.cfg)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		res.Status = SeverityError
		res.Message = fmt.Sprintf("configuration has %d problem(s)", len(errs))
		res.Problems = msgs
		return res
	}

	if c.file == "" {
		res.Status = SeverityInfo
		res.Message = fmt.Sprintf("no config file; using defaults for %s", c.cfg.App)
		res.Hint = "savekeep config init writes one"
		return res
	}

	res.Status = SeverityPass
	res.Message = "configuration is valid"
	return res
}

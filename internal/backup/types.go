package backup

import "time"

// Backup describes one named snapshot in the store.
type Backup struct {
	// Name is the backup's directory name under the store root.
	Name string `json:"name"`

	// Path is the absolute path of the backup directory.
	Path string `json:"path"`

	// CreatedAt is the modification time of the backup directory.
	CreatedAt time.Time `json:"created_at"`

	// Files is the number of regular files in the backup.
	Files int `json:"files"`

	// Size is the total size in bytes of those files.
	Size int64 `json:"size"`
}

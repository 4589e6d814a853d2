package cmd

import "testing"

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "dev"},
		{"dev", "", "dev"},
		{"1.2.0", "3f2a9c1d8e7b", "1.2.0 (3f2a9c1)"},
		{"1.2.0", "abc", "1.2.0 (abc)"},
	}

	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

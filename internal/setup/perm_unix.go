//go:build !windows

package setup

import "os"

// makeExecutable sets rwxr-xr-x regardless of the process umask.
func makeExecutable(path string) error {
	return os.Chmod(path, 0o755) // #nosec G302 -- git hooks must be executable
}

//go:build windows

package setup

// makeExecutable is a no-op: Windows has no executable bit and git for
// Windows runs hooks through its bundled shell.
func makeExecutable(string) error { return nil }

//go:build !linux

package target

import "runtime"

// Host reports the platform and machine architecture of the current host.
func Host() (Platform, string) {
	switch runtime.GOOS {
	case "darwin":
		return Darwin, goArch()
	case "windows":
		return Windows, goArch()
	default:
		return Linux, goArch()
	}
}

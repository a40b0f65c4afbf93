// Package target identifies build targets: the platform/architecture pair a
// build is configured for and the optimization profile it uses.
package target

import (
	"fmt"
	"strings"
)

// Platform is the target operating system.
type Platform int

const (
	Linux Platform = iota
	Darwin
	Windows
)

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Darwin:
		return "darwin"
	case Windows:
		return "windows"
	default:
		return fmt.Sprintf("Platform(%d)", p)
	}
}

// ParsePlatform parses a platform name. "macos" and "mingw32" are accepted
// aliases for darwin and windows.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(s) {
	case "linux":
		return Linux, nil
	case "darwin", "macos":
		return Darwin, nil
	case "windows", "mingw32":
		return Windows, nil
	default:
		return 0, fmt.Errorf("unknown platform %q (want linux, darwin or windows)", s)
	}
}

// Profile is the build optimization profile. Exactly one profile applies to
// a build; debug and release flags are mutually exclusive.
type Profile int

const (
	Release Profile = iota
	Debug
)

func (p Profile) String() string {
	switch p {
	case Release:
		return "release"
	case Debug:
		return "debug"
	default:
		return fmt.Sprintf("Profile(%d)", p)
	}
}

// ParseProfile parses a profile name.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "release":
		return Release, nil
	case "debug":
		return Debug, nil
	default:
		return 0, fmt.Errorf("unknown profile %q (want release or debug)", s)
	}
}

// Package policy injects platform- and profile-specific configure flags,
// independent of feature selection.
//
// Flag order is a safety property: platform flags come first, feature flags
// second, profile flags last, so later flags win if the configure script
// treats repeated flags as last-wins.
package policy

import (
	"fmt"

	"github.com/avbuild/avbuild/internal/target"
)

// UnsupportedTargetError reports a platform/architecture combination the
// policy tables do not cover. It is raised before any probing begins.
type UnsupportedTargetError struct {
	Platform target.Platform
	Arch     string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported target %s/%s", e.Platform, e.Arch)
}

// platformArchs lists the architectures each platform's overlay recognizes.
var platformArchs = map[target.Platform][]string{
	target.Linux:   {"x86_64", "aarch64", "arm64", "i686"},
	target.Darwin:  {"x86_64", "arm64"},
	target.Windows: {"x86_64", "i686"},
}

// PlatformFlags returns the configure flags mandated by the target platform
// and architecture. An unrecognized combination is a fatal configuration
// error, never silently ignored.
func PlatformFlags(platform target.Platform, arch string) ([]string, error) {
	if !archSupported(platform, arch) {
		return nil, &UnsupportedTargetError{Platform: platform, Arch: arch}
	}
	switch platform {
	case target.Windows:
		// MinGW cross builds are always static; the cross prefix selects
		// the <arch>-w64-mingw32 toolchain.
		return []string{
			"--target-os=mingw32",
			"--arch=" + arch,
			"--cross-prefix=" + arch + "-w64-mingw32-",
			"--extra-cflags=-static",
			"--extra-ldflags=-static",
		}, nil
	case target.Darwin:
		if arch == "arm64" {
			// FFmpeg's configure requires --enable-cross-compile for arm64
			// even when the host is already arm64.
			return []string{
				"--arch=arm64",
				"--enable-cross-compile",
				"--extra-cflags=-mmacosx-version-min=11.0",
				"--extra-ldflags=-mmacosx-version-min=11.0",
			}, nil
		}
		return nil, nil
	case target.Linux:
		return []string{
			"--extra-cflags=-static",
			"--extra-ldflags=-static",
			"--pkg-config-flags=--static",
		}, nil
	default:
		return nil, &UnsupportedTargetError{Platform: platform, Arch: arch}
	}
}

// ProfileFlags returns the configure flags for the build profile. Debug and
// release are mutually exclusive; exactly one applies.
func ProfileFlags(profile target.Profile) []string {
	if profile == target.Debug {
		return []string{
			"--enable-debug",
			"--disable-optimizations",
			"--disable-stripping",
		}
	}
	return []string{"--enable-optimizations"}
}

func archSupported(platform target.Platform, arch string) bool {
	for _, a := range platformArchs[platform] {
		if a == arch {
			return true
		}
	}
	return false
}

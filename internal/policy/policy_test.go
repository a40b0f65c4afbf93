package policy

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/avbuild/avbuild/internal/target"
)

func TestWindowsFlags(t *testing.T) {
	flags, err := PlatformFlags(target.Windows, "x86_64")
	if err != nil {
		t.Fatalf("PlatformFlags: %v", err)
	}

	for _, want := range []string{
		"--cross-prefix=x86_64-w64-mingw32-",
		"--target-os=mingw32",
		"--arch=x86_64",
		"--extra-cflags=-static",
		"--extra-ldflags=-static",
	} {
		if !slices.Contains(flags, want) {
			t.Errorf("flags missing %q: %v", want, flags)
		}
	}
}

func TestDarwinArm64IsCrossBuild(t *testing.T) {
	flags, err := PlatformFlags(target.Darwin, "arm64")
	if err != nil {
		t.Fatalf("PlatformFlags: %v", err)
	}
	if !slices.Contains(flags, "--enable-cross-compile") {
		t.Errorf("darwin/arm64 must enable cross compile: %v", flags)
	}

	// Minimum OS version must cover both compile and link stages.
	var cflags, ldflags bool
	for _, f := range flags {
		if strings.HasPrefix(f, "--extra-cflags=") && strings.Contains(f, "-mmacosx-version-min=") {
			cflags = true
		}
		if strings.HasPrefix(f, "--extra-ldflags=") && strings.Contains(f, "-mmacosx-version-min=") {
			ldflags = true
		}
	}
	if !cflags || !ldflags {
		t.Errorf("darwin/arm64 missing version-min pair: %v", flags)
	}
}

func TestDarwinX8664NoExtraFlags(t *testing.T) {
	flags, err := PlatformFlags(target.Darwin, "x86_64")
	if err != nil {
		t.Fatalf("PlatformFlags: %v", err)
	}
	if len(flags) != 0 {
		t.Errorf("darwin/x86_64 should emit no flags, got %v", flags)
	}
}

func TestLinuxStaticPkgConfig(t *testing.T) {
	flags, err := PlatformFlags(target.Linux, "x86_64")
	if err != nil {
		t.Fatalf("PlatformFlags: %v", err)
	}
	for _, want := range []string{
		"--extra-cflags=-static",
		"--extra-ldflags=-static",
		"--pkg-config-flags=--static",
	} {
		if !slices.Contains(flags, want) {
			t.Errorf("flags missing %q: %v", want, flags)
		}
	}
}

func TestUnsupportedArch(t *testing.T) {
	_, err := PlatformFlags(target.Windows, "riscv64")
	if err == nil {
		t.Fatal("expected error for windows/riscv64")
	}
	var unsupported *UnsupportedTargetError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error type = %T, want *UnsupportedTargetError", err)
	}
	if unsupported.Arch != "riscv64" {
		t.Errorf("Arch = %q, want %q", unsupported.Arch, "riscv64")
	}
	if msg := err.Error(); !strings.Contains(msg, "windows/riscv64") {
		t.Errorf("error message %q does not name the combination", msg)
	}
}

func TestProfileExclusivity(t *testing.T) {
	debug := ProfileFlags(target.Debug)
	release := ProfileFlags(target.Release)

	if !slices.Contains(debug, "--disable-optimizations") {
		t.Errorf("debug flags = %v", debug)
	}
	if slices.Contains(debug, "--enable-optimizations") {
		t.Errorf("debug flags must not enable optimizations: %v", debug)
	}
	if got, want := strings.Join(release, " "), "--enable-optimizations"; got != want {
		t.Errorf("release flags = %q, want %q", got, want)
	}
}

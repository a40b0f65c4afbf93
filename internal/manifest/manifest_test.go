package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/avbuild/avbuild/internal/target"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
build {
  features = ["libx264", "libopus"]
  platform = "linux"
  arch     = "x86_64"
  profile  = "debug"
  prefix   = "/opt/ffmpeg"
  version  = "7.1"
}
`)

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(b.Features, []string{"libx264", "libopus"}) {
		t.Errorf("Features = %v", b.Features)
	}
	if b.Platform != "linux" || b.Arch != "x86_64" || b.Profile != "debug" {
		t.Errorf("target = %s/%s %s", b.Platform, b.Arch, b.Profile)
	}
	if b.Version != "7.1" {
		t.Errorf("Version = %q", b.Version)
	}
}

func TestLoadHostVariables(t *testing.T) {
	path := writeManifest(t, `
build {
  platform = host.os
  arch     = host.arch
  prefix   = "/opt/avbuild/${host.os}-${host.arch}"
}
`)

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	platform, arch := target.Host()
	if b.Platform != platform.String() {
		t.Errorf("Platform = %q, want %q", b.Platform, platform)
	}
	if b.Arch != arch {
		t.Errorf("Arch = %q, want %q", b.Arch, arch)
	}
	if want := "/opt/avbuild/" + platform.String() + "-" + arch; b.Prefix != want {
		t.Errorf("Prefix = %q, want %q", b.Prefix, want)
	}
}

func TestLoadPartial(t *testing.T) {
	path := writeManifest(t, `
build {
  features = ["libopus"]
}
`)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Platform != "" || b.Version != "" {
		t.Errorf("unset attributes not empty: %+v", b)
	}
}

func TestLoadUnknownAttribute(t *testing.T) {
	path := writeManifest(t, `
build {
  featuers = ["libopus"]
}
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for misspelled attribute")
	}
}

func TestLoadNoBuildBlock(t *testing.T) {
	path := writeManifest(t, "\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing build block")
	}
	if !strings.Contains(err.Error(), "no build block") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.hcl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

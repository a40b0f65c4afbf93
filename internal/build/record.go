package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avbuild/avbuild/internal/target"
)

// recordFile is the build record location relative to the install prefix.
const recordFile = "share/avbuild/build-info.txt"

// Info is the metadata recorded after a successful build.
type Info struct {
	Version  string
	Platform target.Platform
	Arch     string
	Profile  target.Profile
	Features []string
	Time     time.Time
}

// WriteRecord writes the build record under prefix and returns its path.
// The record is a plain-text pass-through of resolution data for humans
// and scripts inspecting an installed tree.
func WriteRecord(prefix string, info Info) (string, error) {
	path := filepath.Join(prefix, filepath.FromSlash(recordFile))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "version: %s\n", info.Version)
	fmt.Fprintf(&b, "platform: %s\n", info.Platform)
	fmt.Fprintf(&b, "arch: %s\n", info.Arch)
	fmt.Fprintf(&b, "profile: %s\n", info.Profile)
	fmt.Fprintf(&b, "features: %s\n", strings.Join(info.Features, " "))
	fmt.Fprintf(&b, "built: %s\n", info.Time.UTC().Format(time.RFC3339))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

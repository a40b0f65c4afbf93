package internal

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/avbuild/avbuild/internal/manifest"
	"github.com/avbuild/avbuild/internal/resolve"
	"github.com/avbuild/avbuild/internal/target"
)

var platformIDs = map[target.Platform][]string{
	target.Linux:   {"linux"},
	target.Darwin:  {"darwin", "macos"},
	target.Windows: {"windows", "mingw32"},
}

var profileIDs = map[target.Profile][]string{
	target.Release: {"release"},
	target.Debug:   {"debug"},
}

// targetFlags are shared by the resolve and build commands: which features
// to enable and which target to configure for. Defaults come from the
// detected host.
type targetFlags struct {
	features     []string
	platform     target.Platform
	arch         string
	profile      target.Profile
	prefix       string
	manifestPath string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	hostPlatform, hostArch := target.Host()
	f.platform = hostPlatform
	f.arch = hostArch

	fl := cmd.Flags()
	fl.StringSliceVar(&f.features, "feature", nil, "Feature to enable (repeatable; default: the catalog's default tier)")
	fl.Var(enumflag.New(&f.platform, "platform", platformIDs, enumflag.EnumCaseInsensitive),
		"platform", "Target platform (linux, darwin, windows)")
	fl.StringVar(&f.arch, "arch", hostArch, "Target architecture (x86_64, arm64, i686, ...)")
	fl.Var(enumflag.New(&f.profile, "profile", profileIDs, enumflag.EnumCaseInsensitive),
		"profile", "Build profile (release, debug)")
	fl.StringVar(&f.prefix, "prefix", "", "Install prefix")
	fl.StringVar(&f.manifestPath, "manifest", "", "Build manifest file (HCL)")
}

// request merges manifest values under the explicit flags and returns the
// resolution request plus the manifest's FFmpeg version, if any. Flags
// given on the command line always win over manifest attributes.
func (f *targetFlags) request(cmd *cobra.Command) (resolve.Request, string, error) {
	req := resolve.Request{
		Features: f.features,
		Platform: f.platform,
		Arch:     f.arch,
		Profile:  f.profile,
		Prefix:   f.prefix,
	}
	if f.manifestPath == "" {
		return req, "", nil
	}

	m, err := manifest.Load(f.manifestPath)
	if err != nil {
		return resolve.Request{}, "", err
	}
	changed := cmd.Flags().Changed
	if len(m.Features) > 0 && !changed("feature") {
		req.Features = m.Features
	}
	if m.Platform != "" && !changed("platform") {
		p, err := target.ParsePlatform(m.Platform)
		if err != nil {
			return resolve.Request{}, "", fmt.Errorf("manifest: %w", err)
		}
		req.Platform = p
	}
	if m.Arch != "" && !changed("arch") {
		req.Arch = m.Arch
	}
	if m.Profile != "" && !changed("profile") {
		p, err := target.ParseProfile(m.Profile)
		if err != nil {
			return resolve.Request{}, "", fmt.Errorf("manifest: %w", err)
		}
		req.Profile = p
	}
	if m.Prefix != "" && !changed("prefix") {
		req.Prefix = m.Prefix
	}
	return req, m.Version, nil
}

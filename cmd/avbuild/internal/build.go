package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/avbuild/avbuild/internal/build"
	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/configure"
	"github.com/avbuild/avbuild/internal/probe"
	"github.com/avbuild/avbuild/internal/release"
	"github.com/avbuild/avbuild/internal/resolve"
	"github.com/avbuild/avbuild/internal/source"
)

var buildTarget targetFlags
var buildVersion string
var buildSource string
var buildJobs int

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build FFmpeg from source",
	Long: `Build fetches the FFmpeg sources at the requested release, resolves the
feature set against the current environment and runs configure, make and
make install. If the resolved configuration is rejected by configure, the
build retries once with a minimal built-in-codecs configuration.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildTarget.register(buildCmd)
	buildCmd.Flags().StringVar(&buildVersion, "version", "latest", "FFmpeg release to build")
	buildCmd.Flags().StringVar(&buildSource, "source", "", "Existing FFmpeg source tree (skips fetching)")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Parallel make jobs (0 = make's default)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req, manifestVersion, err := buildTarget.request(cmd)
	if err != nil {
		return err
	}
	if manifestVersion != "" && !cmd.Flags().Changed("version") {
		buildVersion = manifestVersion
	}
	fetcher := source.NewGit()
	version, err := release.Resolve(buildVersion)
	if err != nil {
		return err
	}
	if buildSource == "" && (buildVersion == "latest" || buildVersion == "") {
		// The known-release table can trail upstream; prefer the newest
		// release tag when the remote answers.
		if tags, tagErr := fetcher.Tags(ctx); tagErr == nil {
			if latest, tagErr := release.FromTags(tags); tagErr == nil {
				version = latest
			}
		} else {
			log.Warnf("listing remote releases: %v (using %s)", tagErr, version)
		}
	}

	work, err := workDir()
	if err != nil {
		return err
	}
	buildName := fmt.Sprintf("%s-%s-%s-%s", version, req.Platform, req.Arch, req.Profile)
	if req.Prefix == "" {
		req.Prefix = filepath.Join(work, "dist", buildName)
	}
	if req.Prefix, err = filepath.Abs(req.Prefix); err != nil {
		return err
	}

	sourceDir := buildSource
	if sourceDir == "" {
		sourceDir = filepath.Join(work, "src", "ffmpeg-"+version)
		tag := source.ReleaseTag(version)
		fmt.Printf("fetching ffmpeg %s (%s)\n", version, tag)
		if err := fetcher.Sync(ctx, tag, sourceDir); err != nil {
			return fmt.Errorf("failed to fetch ffmpeg %s: %w", version, err)
		}
	}

	runner := configure.New(sourceDir, filepath.Join(work, "build", buildName), req.Prefix)
	runner.SetJobs(buildJobs)
	if !verbose {
		runner.SetStdout(io.Discard)
		runner.SetStderr(io.Discard)
	}

	builder := build.New(resolve.New(catalog.Builtin(), probe.NewEnv()), runner, catalog.Builtin())
	result, err := builder.Run(ctx, req, version)
	if err != nil {
		return fmt.Errorf("failed to build ffmpeg %s: %w", version, err)
	}

	printReport(result.Report)
	if result.Tier == build.Minimal {
		color.Warn.Println("built with the minimal fallback configuration; optional features were dropped")
	}
	fmt.Printf("installed to %s\n", req.Prefix)
	fmt.Printf("build record: %s\n", result.RecordPath)
	return nil
}

// workDir returns avbuild's workspace directory for sources, build trees
// and default install prefixes.
func workDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "avbuild"), nil
}

// Package configure drives the configure/make/make-install workflow of an
// FFmpeg source tree.
package configure

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Runner runs the build steps for one source tree. The configure step's
// exit status is the authoritative accept/reject signal for a flag set;
// the resolver's probes are only advisory.
type Runner interface {
	// Configure runs <sourceDir>/configure inside the build directory.
	// --prefix is prepended automatically; flags follow in order.
	Configure(ctx context.Context, flags ...string) error
	// Build runs make.
	Build(ctx context.Context) error
	// Install runs make install.
	Install(ctx context.Context) error
}

// Exec is the Runner backed by real processes.
type Exec struct {
	sourceDir  string
	buildDir   string
	installDir string
	jobs       int
	env        map[string]string

	stdout io.Writer
	stderr io.Writer
}

// New returns a Runner building sourceDir inside buildDir and installing
// into installDir. Subprocess output goes to os.Stdout/os.Stderr until
// redirected with SetStdout/SetStderr.
func New(sourceDir, buildDir, installDir string) *Exec {
	return &Exec{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		env:        make(map[string]string),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetStdout redirects subprocess standard output.
func (e *Exec) SetStdout(w io.Writer) { e.stdout = w }

// SetStderr redirects subprocess standard error.
func (e *Exec) SetStderr(w io.Writer) { e.stderr = w }

// SetJobs sets the make parallelism. Zero means make's default.
func (e *Exec) SetJobs(n int) { e.jobs = n }

// Env sets key=value for every command spawned by this runner.
func (e *Exec) Env(key, value string) {
	e.env[key] = value
}

// Configure implements Runner.
func (e *Exec) Configure(ctx context.Context, flags ...string) error {
	if err := os.MkdirAll(e.buildDir, 0o755); err != nil {
		return err
	}
	exe := filepath.Join(e.sourceDir, "configure")
	args := make([]string, 0, 1+len(flags))
	if e.installDir != "" {
		args = append(args, "--prefix="+e.installDir)
	}
	if err := e.run(ctx, exe, append(args, flags...)); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	return nil
}

// Build implements Runner.
func (e *Exec) Build(ctx context.Context) error {
	var args []string
	if e.jobs > 0 {
		args = append(args, "-j"+strconv.Itoa(e.jobs))
	}
	if err := e.run(ctx, "make", args); err != nil {
		return fmt.Errorf("make: %w", err)
	}
	return nil
}

// Install implements Runner.
func (e *Exec) Install(ctx context.Context) error {
	if err := e.run(ctx, "make", []string{"install"}); err != nil {
		return fmt.Errorf("make install: %w", err)
	}
	return nil
}

func (e *Exec) run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.buildDir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if len(e.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), e.env)
	}
	return cmd.Run()
}

// mergeEnv returns base with every key in overrides replaced or appended.
func mergeEnv(base []string, overrides map[string]string) []string {
	idx := make(map[string]int, len(base))
	for i, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for k, v := range overrides {
		if i, ok := idx[k]; ok {
			base[i] = k + "=" + v
		} else {
			base = append(base, k+"="+v)
		}
	}
	return base
}

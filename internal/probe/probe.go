// Package probe answers whether a feature's external dependency is present
// in the current build environment.
package probe

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/qiniu/x/log"
)

// Result is the outcome of probing one feature. Results are produced fresh
// on every resolution; the environment can change between runs, so nothing
// is cached.
type Result struct {
	Available bool
	// Reason is a human-readable diagnostic, set when the feature is
	// unavailable.
	Reason string
}

// Prober checks whether a feature's dependency is available.
type Prober interface {
	Probe(ctx context.Context, spec catalog.FeatureSpec) Result
}

// Env probes through the real toolchain: pkg-config, the C compiler and
// PATH lookups. A missing detection tool makes the probe report the
// feature unavailable; it never fails the resolution itself.
type Env struct {
	pkgConfig string
	cc        string

	lookPath func(string) (string, error)
	runCmd   func(ctx context.Context, name, stdin string, args ...string) error
}

// Option configures an Env.
type Option func(*Env)

// WithPkgConfig overrides the pkg-config executable.
func WithPkgConfig(path string) Option {
	return func(e *Env) { e.pkgConfig = path }
}

// WithCompiler overrides the C compiler used for header probes.
func WithCompiler(path string) Option {
	return func(e *Env) { e.cc = path }
}

// NewEnv returns a prober for the current environment. The C compiler
// defaults to $CC, falling back to "cc".
func NewEnv(opts ...Option) *Env {
	e := &Env{
		pkgConfig: "pkg-config",
		cc:        defaultCompiler(),
		lookPath:  exec.LookPath,
		runCmd:    runCommand,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Probe implements Prober.
func (e *Env) Probe(ctx context.Context, spec catalog.FeatureSpec) Result {
	var r Result
	switch spec.Strategy {
	case catalog.AlwaysTrue:
		r = Result{Available: true}
	case catalog.PackageMetadata:
		r = e.probePkgConfig(ctx, spec.Target)
	case catalog.HeaderInclusion:
		r = e.probeHeader(ctx, spec.Target)
	case catalog.CommandExists:
		r = e.probeCommand(spec.Target)
	default:
		r = Result{Reason: fmt.Sprintf("unknown probe strategy %v", spec.Strategy)}
	}
	if r.Available {
		log.Debugf("probe %s (%v %s): ok", spec.Name, spec.Strategy, spec.Target)
	} else {
		log.Debugf("probe %s (%v %s): %s", spec.Name, spec.Strategy, spec.Target, r.Reason)
	}
	return r
}

func (e *Env) probePkgConfig(ctx context.Context, name string) Result {
	if _, err := e.lookPath(e.pkgConfig); err != nil {
		return Result{Reason: fmt.Sprintf("%s not found in PATH", e.pkgConfig)}
	}
	if err := e.runCmd(ctx, e.pkgConfig, "", "--exists", name); err != nil {
		return Result{Reason: fmt.Sprintf("pkg-config has no %s", name)}
	}
	return Result{Available: true}
}

// probeHeader preprocesses a one-line translation unit that includes the
// header. Preprocessing is enough to prove the header resolves against the
// active include paths without producing any object file.
func (e *Env) probeHeader(ctx context.Context, header string) Result {
	if _, err := e.lookPath(e.cc); err != nil {
		return Result{Reason: fmt.Sprintf("C compiler %q not found in PATH", e.cc)}
	}
	src := fmt.Sprintf("#include <%s>\n", header)
	if err := e.runCmd(ctx, e.cc, src, "-E", "-x", "c", "-"); err != nil {
		return Result{Reason: fmt.Sprintf("%s not usable with %s", header, e.cc)}
	}
	return Result{Available: true}
}

func (e *Env) probeCommand(name string) Result {
	if _, err := e.lookPath(name); err != nil {
		return Result{Reason: fmt.Sprintf("%s not found in PATH", name)}
	}
	return Result{Available: true}
}

func defaultCompiler() string {
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return "cc"
}

func runCommand(ctx context.Context, name, stdin string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

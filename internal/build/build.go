// Package build orchestrates one build run: resolution, the configure step
// with its minimal fallback, compilation and the build record.
//
// The fallback exists because probing can be wrong in both directions. A
// library can report present through pkg-config yet fail to link (wrong
// architecture, broken .pc file), so the configure script's own verdict
// overrides the probes: if it rejects the primary flag set, the build
// retries exactly once with a minimal set that keeps only platform, license
// and profile flags. There is no further tier.
package build

import (
	"context"
	"fmt"
	"time"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/configure"
	"github.com/avbuild/avbuild/internal/resolve"
	"github.com/qiniu/x/log"
)

// Tier identifies which configuration tier a build ended up on.
type Tier int

const (
	// Primary is the fully-resolved feature configuration.
	Primary Tier = iota
	// Minimal is the guaranteed-buildable fallback with built-in codecs
	// only.
	Minimal
)

func (t Tier) String() string {
	if t == Minimal {
		return "minimal"
	}
	return "primary"
}

// FallbackError reports that even the minimal configuration was rejected.
// That points at a broken toolchain rather than missing optional libraries.
type FallbackError struct {
	// PrimaryErr is what failed the primary tier: the configure rejection,
	// or nil when the tier was skipped for resolving no features at all.
	PrimaryErr error
	// MinimalErr is the minimal tier's configure rejection.
	MinimalErr error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("minimal configuration rejected (toolchain broken?): %v", e.MinimalErr)
}

func (e *FallbackError) Unwrap() error { return e.MinimalErr }

// Resolver is the resolution step as the builder sees it.
type Resolver interface {
	Resolve(ctx context.Context, req resolve.Request) (*resolve.Report, error)
}

// Builder drives one build.
type Builder struct {
	resolver Resolver
	runner   configure.Runner
	catalog  *catalog.Catalog
}

// New returns a Builder resolving through resolver and configuring through
// runner. The catalog supplies the license features the minimal tier keeps.
func New(resolver Resolver, runner configure.Runner, cat *catalog.Catalog) *Builder {
	return &Builder{resolver: resolver, runner: runner, catalog: cat}
}

// Configure resolves req and runs the configure step, falling back once to
// the minimal flag set. It returns the report of the tier that was
// accepted.
func (b *Builder) Configure(ctx context.Context, req resolve.Request) (*resolve.Report, Tier, error) {
	report, err := b.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, Primary, err
	}

	var primaryErr error
	if report.SystemicFailure() {
		// Nothing the caller asked for resolved. Configuring with an
		// empty feature set would silently build something else than
		// requested, so go straight to the fallback.
		primaryErr = fmt.Errorf("no requested feature available")
		log.Warnf("skipping primary configuration: %v", primaryErr)
	} else {
		log.Infof("configuring with %d flags (primary)", len(report.EnabledFlags))
		primaryErr = b.runner.Configure(ctx, report.EnabledFlags...)
		if primaryErr == nil {
			return report, Primary, nil
		}
		log.Warnf("primary configuration rejected: %v", primaryErr)
	}

	minimal, err := b.minimalReport(ctx, req)
	if err != nil {
		return nil, Minimal, err
	}
	log.Infof("configuring with %d flags (minimal fallback)", len(minimal.EnabledFlags))
	if err := b.runner.Configure(ctx, minimal.EnabledFlags...); err != nil {
		return nil, Minimal, &FallbackError{PrimaryErr: primaryErr, MinimalErr: err}
	}
	return minimal, Minimal, nil
}

// minimalReport builds the fallback flag set: platform and profile flags
// plus the license toggles, nothing probed. The license features are
// AlwaysTrue entries, so this resolution touches no external tool and
// cannot itself fail past target validation.
func (b *Builder) minimalReport(ctx context.Context, req resolve.Request) (*resolve.Report, error) {
	minReq := req
	minReq.Features = b.catalog.AlwaysOn()
	report, err := b.resolver.Resolve(ctx, minReq)
	if err != nil {
		return nil, fmt.Errorf("minimal resolution: %w", err)
	}
	return report, nil
}

// Result describes a completed build.
type Result struct {
	Report *resolve.Report
	Tier   Tier
	// RecordPath is where the build record was written.
	RecordPath string
}

// Run performs the full build: configure (with fallback), make, make
// install, then the build record. version names the FFmpeg release being
// built.
func (b *Builder) Run(ctx context.Context, req resolve.Request, version string) (*Result, error) {
	report, tier, err := b.Configure(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := b.runner.Build(ctx); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := b.runner.Install(ctx); err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}

	recordPath, err := WriteRecord(req.Prefix, Info{
		Version:  version,
		Platform: req.Platform,
		Arch:     req.Arch,
		Profile:  req.Profile,
		Features: report.Included,
		Time:     time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("write build record: %w", err)
	}

	log.Infof("build complete (%s tier), record at %s", tier, recordPath)
	return &Result{Report: report, Tier: tier, RecordPath: recordPath}, nil
}

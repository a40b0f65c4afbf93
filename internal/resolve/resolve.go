// Package resolve turns a feature request into the final, ordered set of
// configure flags for one build.
//
// Resolution combines three inputs: the static feature catalog, live probe
// results for the current environment, and the platform/profile policy
// overlay. The output is a Report listing the flags and, for every catalog
// feature, why it was or was not included.
package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/policy"
	"github.com/avbuild/avbuild/internal/probe"
	"github.com/avbuild/avbuild/internal/target"
	"github.com/qiniu/x/log"
)

// Request describes one resolution run. An empty Features list means "use
// the catalog's default tier".
type Request struct {
	Features []string
	Platform target.Platform
	Arch     string
	Profile  target.Profile
	Prefix   string
}

// Report is the outcome of one resolution. It is immutable after
// construction; all feature name slices are in catalog order except
// UnknownRequested, which is sorted.
type Report struct {
	// EnabledFlags is the final flag list: platform flags, then per-feature
	// flags in catalog order, then profile flags, deduplicated keeping the
	// first occurrence.
	EnabledFlags []string `json:"enabled_flags"`
	// Included features probed available and contributed their flags.
	Included []string `json:"included"`
	// SkippedMissing features were requested but their probe failed.
	SkippedMissing []string `json:"skipped_missing"`
	// SkippedUnrequested features exist in the catalog but were neither
	// requested nor default; they are never probed.
	SkippedUnrequested []string `json:"skipped_unrequested"`
	// UnknownRequested names were requested but are not in the catalog.
	UnknownRequested []string `json:"unknown_requested"`
	// Reasons maps each SkippedMissing feature to its probe diagnostic.
	Reasons map[string]string `json:"reasons,omitempty"`

	request Request
}

// Request returns the request this report was resolved from.
func (r *Report) Request() Request { return r.request }

// SystemicFailure reports whether an explicit, non-empty request resolved
// to nothing at all. That pattern signals a broken probe environment (for
// example, no pkg-config anywhere) rather than individually missing
// libraries, and makes the build eligible for the minimal fallback without
// attempting to configure first.
func (r *Report) SystemicFailure() bool {
	return len(r.request.Features) > 0 && len(r.Included) == 0
}

// Resolver resolves requests against a catalog using a prober.
type Resolver struct {
	catalog *catalog.Catalog
	prober  probe.Prober
}

// New returns a Resolver over c probing through p.
func New(c *catalog.Catalog, p probe.Prober) *Resolver {
	return &Resolver{catalog: c, prober: p}
}

// Resolve runs one resolution. It fails only on an unsupported
// platform/architecture combination, checked before any probe runs; all
// per-feature conditions are accumulated into the report instead.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Report, error) {
	platformFlags, err := policy.PlatformFlags(req.Platform, req.Arch)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	effective, unknown := r.effectiveSet(req.Features)

	report := &Report{
		UnknownRequested: unknown,
		Reasons:          make(map[string]string),
		request:          req,
	}

	flags := newFlagList()
	flags.add(platformFlags...)

	// Probe in catalog order. The order is a stable total order over the
	// registry, so the same environment always yields the same flag
	// sequence.
	for _, spec := range r.catalog.Specs() {
		if !effective[spec.Name] {
			report.SkippedUnrequested = append(report.SkippedUnrequested, spec.Name)
			continue
		}
		result := r.prober.Probe(ctx, spec)
		if result.Available {
			report.Included = append(report.Included, spec.Name)
			flags.add(spec.Flags...)
		} else {
			report.SkippedMissing = append(report.SkippedMissing, spec.Name)
			report.Reasons[spec.Name] = result.Reason
		}
	}

	flags.add(policy.ProfileFlags(req.Profile)...)
	report.EnabledFlags = flags.flags

	log.Infof("resolved %d features, %d missing, %d unknown",
		len(report.Included), len(report.SkippedMissing), len(report.UnknownRequested))
	return report, nil
}

// effectiveSet returns the set of catalog features to consider and the
// sorted list of requested names the catalog does not know. A duplicate
// request for the same feature counts once.
func (r *Resolver) effectiveSet(requested []string) (map[string]bool, []string) {
	effective := make(map[string]bool)
	if len(requested) == 0 {
		for _, name := range r.catalog.DefaultNames() {
			effective[name] = true
		}
		return effective, nil
	}

	var unknown []string
	seen := make(map[string]bool)
	for _, name := range requested {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := r.catalog.Lookup(name); ok {
			effective[name] = true
		} else {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return effective, unknown
}

package build

import (
	"context"
	"slices"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/probe"
)

// mockRunner implements configure.Runner for unit testing.
type mockRunner struct {
	configureFunc func(ctx context.Context, flags ...string) error
	buildFunc     func(ctx context.Context) error
	installFunc   func(ctx context.Context) error

	// configureCalls records the flags of every Configure invocation.
	configureCalls [][]string
}

func (m *mockRunner) Configure(ctx context.Context, flags ...string) error {
	m.configureCalls = append(m.configureCalls, slices.Clone(flags))
	if m.configureFunc != nil {
		return m.configureFunc(ctx, flags...)
	}
	return nil
}

func (m *mockRunner) Build(ctx context.Context) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx)
	}
	return nil
}

func (m *mockRunner) Install(ctx context.Context) error {
	if m.installFunc != nil {
		return m.installFunc(ctx)
	}
	return nil
}

// mockProber answers probes from a fixed availability table; AlwaysTrue
// features are always available.
type mockProber struct {
	available map[string]bool
}

func (m *mockProber) Probe(ctx context.Context, spec catalog.FeatureSpec) probe.Result {
	if spec.Strategy == catalog.AlwaysTrue || m.available[spec.Name] {
		return probe.Result{Available: true}
	}
	return probe.Result{Reason: spec.Target + " not found"}
}

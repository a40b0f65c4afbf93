// Package catalog defines the static registry of optional build features.
//
// A feature is a codec or support library that a build may include. Each
// entry carries its detection strategy and the configure flags it emits, so
// adding a feature is a data change in this package, never new control flow
// elsewhere.
package catalog

import (
	"fmt"
	"slices"
)

// Strategy selects how a feature's availability is detected.
type Strategy int

const (
	// PackageMetadata queries pkg-config for the named module.
	PackageMetadata Strategy = iota
	// HeaderInclusion preprocesses a translation unit that includes the
	// named header through the active C compiler.
	HeaderInclusion
	// CommandExists checks that the named executable resolves on PATH.
	CommandExists
	// AlwaysTrue marks features with no external dependency, such as
	// license toggles.
	AlwaysTrue
)

func (s Strategy) String() string {
	switch s {
	case PackageMetadata:
		return "pkg-config"
	case HeaderInclusion:
		return "header"
	case CommandExists:
		return "command"
	case AlwaysTrue:
		return "always"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// FeatureSpec describes one optional feature.
type FeatureSpec struct {
	// Name is the unique key users request the feature by, e.g. "libx264".
	Name string
	// Strategy and Target describe how availability is probed: Target is
	// the pkg-config module, header path or command name, depending on the
	// strategy. Empty for AlwaysTrue.
	Strategy Strategy
	Target   string
	// Flags are the configure arguments emitted when the feature is
	// enabled, in order. Empty only for pure detection entries.
	Flags []string
	// Default marks the feature as part of the default-on tier, enabled
	// when the caller requests no explicit feature list.
	Default bool
}

// Catalog is an ordered, read-only feature registry. Registration order is
// the stable total order used for probing, flag emission and reporting.
type Catalog struct {
	specs []FeatureSpec
	index map[string]int
}

// New builds a catalog from specs. Duplicate names are a programming
// error and panic: the catalog is constructed once at startup from static
// data and must never be ambiguous.
func New(specs ...FeatureSpec) *Catalog {
	c := &Catalog{
		specs: slices.Clone(specs),
		index: make(map[string]int, len(specs)),
	}
	for i, s := range specs {
		if s.Name == "" {
			panic("catalog: feature with empty name")
		}
		if _, dup := c.index[s.Name]; dup {
			panic(fmt.Sprintf("catalog: duplicate feature %q", s.Name))
		}
		c.index[s.Name] = i
	}
	return c
}

// Lookup returns the spec for name.
func (c *Catalog) Lookup(name string) (FeatureSpec, bool) {
	i, ok := c.index[name]
	if !ok {
		return FeatureSpec{}, false
	}
	return c.specs[i], true
}

// Specs returns every feature in registration order.
func (c *Catalog) Specs() []FeatureSpec {
	return slices.Clone(c.specs)
}

// Names returns every feature name in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.specs))
	for i, s := range c.specs {
		names[i] = s.Name
	}
	return names
}

// DefaultNames returns the default-on tier in registration order. An empty
// request resolves to exactly this set, so its contents must not depend on
// anything but the registry itself.
func (c *Catalog) DefaultNames() []string {
	var names []string
	for _, s := range c.specs {
		if s.Default {
			names = append(names, s.Name)
		}
	}
	return names
}

// AlwaysOn returns the names of default-tier features that need no
// external dependency (the license toggles). These are the only feature
// flags the minimal fallback configuration keeps.
func (c *Catalog) AlwaysOn() []string {
	var names []string
	for _, s := range c.specs {
		if s.Default && s.Strategy == AlwaysTrue {
			names = append(names, s.Name)
		}
	}
	return names
}

// Len returns the number of registered features.
func (c *Catalog) Len() int {
	return len(c.specs)
}

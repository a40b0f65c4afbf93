// Package manifest loads build manifests: HCL files declaring a build's
// feature list and target, as an alternative to spelling everything on the
// command line.
//
// A manifest holds one build block:
//
//	build {
//	  features = ["libx264", "libopus"]
//	  platform = host.os
//	  arch     = host.arch
//	  profile  = "release"
//	  prefix   = "/opt/avbuild/${host.os}-${host.arch}"
//	  version  = "7.1"
//	}
//
// host.os and host.arch evaluate to the detected host target, so one
// manifest can serve several machines.
package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/avbuild/avbuild/internal/target"
)

// Build is the decoded build block. Every attribute is optional; the CLI
// fills in host defaults for whatever a manifest leaves out, and explicit
// command-line flags override manifest values.
type Build struct {
	Features []string `hcl:"features,optional"`
	Platform string   `hcl:"platform,optional"`
	Arch     string   `hcl:"arch,optional"`
	Profile  string   `hcl:"profile,optional"`
	Prefix   string   `hcl:"prefix,optional"`
	Version  string   `hcl:"version,optional"`
}

type manifestFile struct {
	Build *Build `hcl:"build,block"`
}

// Load parses and decodes the manifest at path. Unknown attributes and
// blocks are errors; a silently ignored typo in a manifest would change
// what gets built.
func Load(path string) (*Build, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse manifest %s: %s", path, diags.Error())
	}

	var decoded manifestFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode manifest %s: %s", path, diags.Error())
	}
	if decoded.Build == nil {
		return nil, fmt.Errorf("manifest %s has no build block", path)
	}
	return decoded.Build, nil
}

// evalContext exposes the detected host target to manifest expressions.
func evalContext() *hcl.EvalContext {
	platform, arch := target.Host()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"host": cty.ObjectVal(map[string]cty.Value{
				"os":   cty.StringVal(platform.String()),
				"arch": cty.StringVal(arch),
			}),
		},
	}
}

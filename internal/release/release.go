// Package release selects which FFmpeg release version to build.
package release

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// knownReleases lists the release versions avbuild targets by default,
// newest last. The table spares a network round trip for the common case;
// FromTags derives the same information from the live repository.
var knownReleases = []string{
	"5.1.6",
	"6.0.1",
	"6.1.2",
	"7.0.2",
	"7.1",
}

// Latest returns the newest known release version.
func Latest() string {
	latest := knownReleases[0]
	for _, v := range knownReleases[1:] {
		if semver.Compare(canonical(v), canonical(latest)) > 0 {
			latest = v
		}
	}
	return latest
}

// Resolve maps a user-supplied version to a known release. "latest" and ""
// mean the newest release; "7" or "7.0" select the newest release with
// that prefix; an exact known version passes through.
func Resolve(version string) (string, error) {
	if version == "" || version == "latest" {
		return Latest(), nil
	}

	best := ""
	for _, v := range knownReleases {
		if v != version && !strings.HasPrefix(v, version+".") {
			continue
		}
		if best == "" || semver.Compare(canonical(v), canonical(best)) > 0 {
			best = v
		}
	}
	if best == "" {
		return "", fmt.Errorf("unknown release %q (known: %s)", version, strings.Join(knownReleases, ", "))
	}
	return best, nil
}

// FromTags returns the newest release version among git release tags of the
// form "n<version>". Non-release tags are ignored.
func FromTags(tags []string) (string, error) {
	latest := ""
	for _, tag := range tags {
		v, ok := parseTag(tag)
		if !ok {
			continue
		}
		if latest == "" || semver.Compare(canonical(v), canonical(latest)) > 0 {
			latest = v
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no release tags found")
	}
	return latest, nil
}

// parseTag extracts the version from a release tag. Pre-release tags such
// as "n7.1-dev" are not releases.
func parseTag(tag string) (string, bool) {
	v, ok := strings.CutPrefix(tag, "n")
	if !ok || v == "" {
		return "", false
	}
	if !semver.IsValid(canonical(v)) || semver.Prerelease(canonical(v)) != "" {
		return "", false
	}
	return v, true
}

// canonical maps an FFmpeg version to semver spelling ("7.1" → "v7.1").
func canonical(v string) string {
	return "v" + v
}

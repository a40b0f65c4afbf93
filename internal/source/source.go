// Package source fetches the FFmpeg source tree at a release tag.
package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultRemote is the upstream FFmpeg repository.
const DefaultRemote = "https://git.ffmpeg.org/ffmpeg.git"

// Fetcher retrieves FFmpeg sources.
type Fetcher interface {
	// Sync ensures dir contains the source tree at the given release tag.
	// If dir doesn't exist it is created; an existing checkout is moved to
	// the requested tag.
	Sync(ctx context.Context, tag, dir string) error

	// Tags returns all tags from the remote repository.
	Tags(ctx context.Context) ([]string, error)
}

// ReleaseTag maps an FFmpeg version to its release tag ("7.1" → "n7.1").
func ReleaseTag(version string) string {
	return "n" + strings.TrimPrefix(version, "n")
}

// gitFetcher implements Fetcher using git with shallow fetches.
type gitFetcher struct {
	git    string
	remote string
}

// GitOption configures gitFetcher.
type GitOption func(*gitFetcher)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitFetcher) {
		g.git = path
	}
}

// WithRemote overrides the upstream repository URL.
func WithRemote(remote string) GitOption {
	return func(g *gitFetcher) {
		g.remote = remote
	}
}

// NewGit creates a git-backed Fetcher.
func NewGit(opts ...GitOption) Fetcher {
	g := &gitFetcher{git: "git", remote: DefaultRemote}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitFetcher) ensureInit(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		return g.run(ctx, dir, "init")
	}
	return nil
}

func (g *gitFetcher) Sync(ctx context.Context, tag, dir string) error {
	if err := g.ensureInit(ctx, dir); err != nil {
		return err
	}
	if err := g.run(ctx, dir, "fetch", "--depth", "1", g.remote, tag); err != nil {
		return fmt.Errorf("fetch %s: %w", tag, err)
	}
	if err := g.run(ctx, dir, "checkout", "FETCH_HEAD"); err != nil {
		return fmt.Errorf("checkout %s: %w", tag, err)
	}
	return nil
}

func (g *gitFetcher) Tags(ctx context.Context) ([]string, error) {
	output, err := g.output(ctx, "", "ls-remote", "--tags", "--refs", g.remote)
	if err != nil {
		return nil, fmt.Errorf("list remote tags: %w", err)
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}

	var tags []string
	for _, line := range strings.Split(output, "\n") {
		// format: <hash>\trefs/tags/<tag>
		parts := strings.Split(line, "\t")
		if len(parts) == 2 {
			tags = append(tags, strings.TrimPrefix(parts[1], "refs/tags/"))
		}
	}
	return tags, nil
}

func (g *gitFetcher) run(ctx context.Context, dir string, args ...string) error {
	_, err := g.output(ctx, dir, args...)
	return err
}

func (g *gitFetcher) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

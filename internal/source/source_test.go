package source

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestReleaseTag(t *testing.T) {
	if got, want := ReleaseTag("7.1"), "n7.1"; got != want {
		t.Errorf("ReleaseTag(7.1) = %q, want %q", got, want)
	}
	// Already-tagged input stays stable.
	if got, want := ReleaseTag("n6.0"), "n6.0"; got != want {
		t.Errorf("ReleaseTag(n6.0) = %q, want %q", got, want)
	}
}

// localRemote creates a git repository with one tagged commit and returns
// its path, for exercising the fetcher without network access.
func localRemote(t *testing.T, tag string) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(dir, "configure"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	run("add", "configure")
	run("commit", "-m", "initial")
	run("tag", tag)
	return dir
}

func TestSyncAtTag(t *testing.T) {
	remote := localRemote(t, "n7.1")
	dir := filepath.Join(t.TempDir(), "ffmpeg")

	f := NewGit(WithRemote(remote))
	if err := f.Sync(context.Background(), "n7.1", dir); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "configure")); err != nil {
		t.Errorf("synced tree missing configure: %v", err)
	}

	// Syncing again into the same directory must succeed.
	if err := f.Sync(context.Background(), "n7.1", dir); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
}

func TestSyncUnknownTag(t *testing.T) {
	remote := localRemote(t, "n7.1")
	dir := filepath.Join(t.TempDir(), "ffmpeg")

	f := NewGit(WithRemote(remote))
	if err := f.Sync(context.Background(), "n9.9", dir); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestTags(t *testing.T) {
	remote := localRemote(t, "n7.1")

	f := NewGit(WithRemote(remote))
	tags, err := f.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	found := false
	for _, tag := range tags {
		if tag == "n7.1" {
			found = true
		}
	}
	if !found {
		t.Errorf("Tags() = %v, want n7.1 present", tags)
	}
}

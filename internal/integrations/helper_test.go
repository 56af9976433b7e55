package integrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skilldock-labs/skilldock/internal/source"
)

// testBundle builds a small canonical bundle without touching disk.
func testBundle() *source.Bundle {
	return &source.Bundle{
		Name:        "pr-review",
		Description: "Reviews pull requests in three passes",
		Version:     "1.0.0",
		Instructions: "# PR Review\n\nUse this skill when reviewing pull requests.\n\nIntro prose.\n\n" +
			"## Correctness\n\nCheck boundaries first. Then check errors.\n\n" +
			"## Tests\n\nEvery change needs a failing test.\n",
		References: []source.Reference{
			{RelPath: "checklist.md", Content: "# Checklist\n\n- item one\n"},
			{RelPath: "topics/go.md", Content: "# Go\n\n- handle errors\n"},
		},
		Commands: []source.Command{
			{Name: "review", Content: "Review this change:\n\n$ARGUMENTS\n"},
		},
	}
}

// projectContext builds an InstallContext rooted in a temp project dir.
func projectContext(t *testing.T, dryRun bool) (InstallContext, string) {
	t.Helper()
	root := t.TempDir()
	return InstallContext{
		Bundle:      testBundle(),
		Scope:       ScopeProject,
		ProjectRoot: root,
		DryRun:      dryRun,
	}, root
}

// snapshotTree lists every file under root, relative paths sorted by walk
// order. Used for dry-run no-effect assertions.
func snapshotTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}

func assertSameTree(t *testing.T, before, after []string) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("file set changed: before %v, after %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("file set changed: before %v, after %v", before, after)
		}
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent", path)
	}
}

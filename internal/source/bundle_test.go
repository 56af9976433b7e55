package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeBundle lays out a minimal valid bundle in a temp directory.
func writeBundle(t *testing.T, frontmatter string) string {
	t.Helper()
	dir := t.TempDir()

	skill := frontmatter + "\n# Title\n\nInstructions body.\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(skill), 0644); err != nil {
		t.Fatal(err)
	}

	refDir := filepath.Join(dir, "references", "topics")
	if err := os.MkdirAll(refDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "references", "flat.md"), []byte("# Flat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(refDir, "nested.md"), []byte("# Nested\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmdDir := filepath.Join(dir, "commands")
	if err := os.MkdirAll(cmdDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cmdDir, "run.md"), []byte("Do it with $ARGUMENTS\n"), 0644); err != nil {
		t.Fatal(err)
	}

	return dir
}

const validFrontmatter = "---\nname: test-skill\ndescription: A test skill\nversion: 1.0.0\n---\n"

func TestLoadBundle(t *testing.T) {
	dir := writeBundle(t, validFrontmatter)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if b.Name != "test-skill" {
		t.Errorf("Name = %q, want test-skill", b.Name)
	}
	if b.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", b.Version)
	}
	if strings.Contains(b.Instructions, "---") {
		t.Error("Instructions must not contain frontmatter")
	}
	if !strings.Contains(b.Instructions, "Instructions body.") {
		t.Errorf("Instructions missing body, got %q", b.Instructions)
	}

	if len(b.References) != 2 {
		t.Fatalf("len(References) = %d, want 2", len(b.References))
	}
	if b.References[0].RelPath != "flat.md" || b.References[1].RelPath != "topics/nested.md" {
		t.Errorf("reference paths = %q, %q", b.References[0].RelPath, b.References[1].RelPath)
	}

	if len(b.Commands) != 1 || b.Commands[0].Name != "run" {
		t.Fatalf("Commands = %+v, want single command named run", b.Commands)
	}
}

func TestLoadBundleMissingSkillFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without SKILL.md")
	}
}

func TestLoadBundleRejectsBadFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		frontmatter string
	}{
		{"missing name", "---\ndescription: d\nversion: 1.0.0\n---\n"},
		{"missing description", "---\nname: x\nversion: 1.0.0\n---\n"},
		{"bad name characters", "---\nname: Bad Name!\ndescription: d\nversion: 1.0.0\n---\n"},
		{"bad semver", "---\nname: x\ndescription: d\nversion: not-a-version\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeBundle(t, tt.frontmatter)
			if _, err := Load(dir); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLoadBundleNoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("# Just a title\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for SKILL.md without frontmatter")
	}
}

func TestLoadEmbedded(t *testing.T) {
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	if b.Name == "" || b.Description == "" || b.Version == "" {
		t.Errorf("embedded bundle metadata incomplete: %+v", b)
	}
	if len(b.References) == 0 {
		t.Error("embedded bundle should ship references")
	}
	if len(b.Commands) == 0 {
		t.Error("embedded bundle should ship at least one command")
	}
}

func TestReferenceLookup(t *testing.T) {
	dir := writeBundle(t, validFrontmatter)
	b, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ref := b.Reference("flat.md"); ref == nil {
		t.Error("expected to find flat.md")
	}
	if ref := b.Reference("absent.md"); ref != nil {
		t.Error("expected nil for unknown reference")
	}
}

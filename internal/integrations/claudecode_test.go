package integrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClaudeCodeInstall(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewClaudeCode()

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !res.Success {
		t.Fatalf("Install failed: %s", res.Message)
	}

	claude := filepath.Join(root, ".claude")
	skillDoc := mustRead(t, filepath.Join(claude, "skills", "pr-review", "SKILL.md"))
	if !strings.HasPrefix(skillDoc, "---\n") {
		t.Error("SKILL.md should start with synthesized frontmatter")
	}
	if !strings.Contains(skillDoc, "name: pr-review") {
		t.Error("frontmatter should carry the skill name")
	}
	if !strings.Contains(skillDoc, "## Correctness") {
		t.Error("instructions body should be preserved")
	}

	mustExist(t, filepath.Join(claude, "skills", "pr-review", "references", "checklist.md"))
	mustExist(t, filepath.Join(claude, "skills", "pr-review", "references", "topics", "go.md"))

	cmd := mustRead(t, filepath.Join(claude, "commands", "pr-review", "review.md"))
	if !strings.Contains(cmd, "$ARGUMENTS") {
		t.Error("claude-code keeps the native placeholder token")
	}

	mustExist(t, filepath.Join(claude, ".skilldock"))
}

func TestClaudeCodeInstallIdempotent(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewClaudeCode()

	if _, err := a.Install(ctx); err != nil {
		t.Fatal(err)
	}
	before := snapshotTree(t, root)

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("re-install failed: %s", res.Message)
	}
	assertSameTree(t, before, snapshotTree(t, root))
}

func TestClaudeCodeUninstallRestoresTree(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewClaudeCode()

	if _, err := a.Install(ctx); err != nil {
		t.Fatal(err)
	}
	res, err := a.Uninstall(ctx)
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !res.Success {
		t.Fatalf("Uninstall failed: %s", res.Message)
	}

	// Everything the adapter created is gone, including empty parents.
	mustNotExist(t, filepath.Join(root, ".claude"))
}

func TestClaudeCodeUninstallWhenNeverInstalled(t *testing.T) {
	ctx, _ := projectContext(t, false)
	a := NewClaudeCode()

	res, err := a.Uninstall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Errorf("uninstall of absent install must succeed, got %s", res.Message)
	}
	if !strings.Contains(res.Message, "nothing to remove") {
		t.Errorf("message = %q, want nothing-to-remove report", res.Message)
	}
}

func TestClaudeCodeUninstallPreservesUserSkills(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewClaudeCode()

	if _, err := a.Install(ctx); err != nil {
		t.Fatal(err)
	}

	// A user-owned skill sits next to ours.
	other := filepath.Join(root, ".claude", "skills", "my-own", "SKILL.md")
	if err := os.MkdirAll(filepath.Dir(other), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(other, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := a.Uninstall(ctx); err != nil {
		t.Fatal(err)
	}
	mustExist(t, other)
	mustNotExist(t, filepath.Join(root, ".claude", "skills", "pr-review"))
}

func TestClaudeCodeDryRunTouchesNothing(t *testing.T) {
	ctx, root := projectContext(t, true)
	a := NewClaudeCode()

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("dry-run install failed: %s", res.Message)
	}
	if len(res.Files) == 0 {
		t.Error("dry-run must report the files it would create")
	}
	if files := snapshotTree(t, root); len(files) != 0 {
		t.Errorf("dry-run created files: %v", files)
	}

	if _, err := a.Uninstall(ctx); err != nil {
		t.Fatal(err)
	}
	if files := snapshotTree(t, root); len(files) != 0 {
		t.Errorf("dry-run uninstall created files: %v", files)
	}
}

func TestClaudeCodeConflictDetected(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewClaudeCode()

	// Pre-existing unmanaged skill directory with the same name.
	userSkill := filepath.Join(root, ".claude", "skills", "pr-review")
	if err := os.MkdirAll(userSkill, 0755); err != nil {
		t.Fatal(err)
	}

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Fatal("install over unmanaged content must fail")
	}
	if !strings.Contains(res.Message, "not managed") {
		t.Errorf("message = %q, want conflict explanation", res.Message)
	}
}

func TestClaudeCodeGlobalScope(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SKILLDOCK_USER_HOME", home)
	a := NewClaudeCode()

	ctx := InstallContext{Bundle: testBundle(), Scope: ScopeGlobal}
	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("global install failed: %s", res.Message)
	}
	mustExist(t, filepath.Join(home, ".claude", "skills", "pr-review", "SKILL.md"))

	installed, err := a.Installed(ScopeGlobal, "")
	if err != nil {
		t.Fatal(err)
	}
	if !installed {
		t.Error("Installed should report true after global install")
	}
}

package integrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKiroInstall(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewKiro()

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !res.Success {
		t.Fatalf("Install failed: %s", res.Message)
	}

	specDir := filepath.Join(root, ".kiro", "specs", "pr-review")

	req := mustRead(t, filepath.Join(specDir, "requirements.md"))
	if !strings.HasPrefix(req, "# Requirements: pr-review\n") {
		t.Error("requirements title missing")
	}
	if !strings.Contains(req, "## Requirement 1: Correctness") {
		t.Error("each instruction section becomes a requirement")
	}
	if !strings.Contains(req, "WHEN the correctness activity of the pr-review skill is performed, THE agent SHALL satisfy: Check boundaries first.") {
		t.Errorf("acceptance clause not derived from the section opening, got:\n%s", req)
	}

	design := mustRead(t, filepath.Join(specDir, "design.md"))
	if !strings.Contains(design, "## Reference Material") {
		t.Error("design must inventory the references")
	}
	if !strings.Contains(design, "- topics/go.md") {
		t.Error("reference paths missing from design")
	}
	if !strings.Contains(design, "- **Tests**: Every change needs a failing test.") {
		t.Errorf("workflow summary missing, got:\n%s", design)
	}

	tasks := mustRead(t, filepath.Join(specDir, "tasks.md"))
	if !strings.Contains(tasks, "- [ ] 1. Complete the correctness pass") {
		t.Errorf("section task missing, got:\n%s", tasks)
	}
	if !strings.Contains(tasks, "Run the review command workflow") {
		t.Error("command task missing")
	}

	mustExist(t, filepath.Join(specDir, ".skilldock-kiro"))
}

func TestKiroInstallIdempotent(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewKiro()

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

func TestKiroUninstallDeletesOwnedDir(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewKiro()

	if _, err := a.Install(ctx); err != nil {
		t.Fatal(err)
	}

	// A sibling spec of foreign origin must survive.
	other := filepath.Join(root, ".kiro", "specs", "hand-written", "requirements.md")
	if err := os.MkdirAll(filepath.Dir(other), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(other, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := a.Uninstall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("Uninstall failed: %s", res.Message)
	}
	mustNotExist(t, filepath.Join(root, ".kiro", "specs", "pr-review"))
	mustExist(t, other)
}

func TestKiroUninstallRemovesEmptyTree(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewKiro()

	if _, err := a.Install(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Uninstall(ctx); err != nil {
		t.Fatal(err)
	}
	mustNotExist(t, filepath.Join(root, ".kiro"))
}

func TestKiroConflictDetected(t *testing.T) {
	ctx, root := projectContext(t, false)
	a := NewKiro()

	specDir := filepath.Join(root, ".kiro", "specs", "pr-review")
	if err := os.MkdirAll(specDir, 0755); err != nil {
		t.Fatal(err)
	}

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Fatal("install over an unmanaged spec dir must fail")
	}
}

func TestKiroRejectsGlobalScope(t *testing.T) {
	a := NewKiro()
	ctx := InstallContext{Bundle: testBundle(), Scope: ScopeGlobal}

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Fatal("kiro specs are project-local; global install must fail")
	}
}

func TestKiroDryRunTouchesNothing(t *testing.T) {
	ctx, root := projectContext(t, true)
	a := NewKiro()

	res, err := a.Install(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("dry-run install failed: %s", res.Message)
	}
	if len(res.Files) != 3 {
		t.Errorf("dry-run reported %d files, want 3", len(res.Files))
	}
	if files := snapshotTree(t, root); len(files) != 0 {
		t.Errorf("dry-run created files: %v", files)
	}
}

func TestTopLevelSections(t *testing.T) {
	text := "# Title\n\nintro\n\n## One\n\nbody one\n\n## Two\n\nbody two\n"
	secs := topLevelSections(text)
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	if secs[0].Title != "One" || secs[0].Body != "body one" {
		t.Errorf("section 0 = %+v", secs[0])
	}
	if secs[1].Title != "Two" || secs[1].Body != "body two" {
		t.Errorf("section 1 = %+v", secs[1])
	}
}

func TestFirstSentence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"One. Two. Three.", "One."},
		{"Spans\nlines. Rest.", "Spans lines."},
		{"No terminator here", "No terminator here"},
	}
	for _, tc := range cases {
		if got := firstSentence(tc.in); got != tc.want {
			t.Errorf("firstSentence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

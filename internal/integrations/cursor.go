package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/content"
	"github.com/skilldock-labs/skilldock/internal/source"
	"github.com/skilldock-labs/skilldock/internal/userdata"
	"go.yaml.in/yaml/v3"
)

// cursorRuleLimit is the per-rule size budget. Cursor tolerates large
// rules; the budget exists to keep pathological bundles in check.
const cursorRuleLimit = 100000

// cursorAdapter writes each logical unit as its own .mdc rule file under
// .cursor/rules/, with a synthesized metadata header controlling when the
// rule applies.
type cursorAdapter struct{}

// NewCursor returns the Cursor adapter. Project scope only.
func NewCursor() Adapter { return &cursorAdapter{} }

func (a *cursorAdapter) Name() string        { return "cursor" }
func (a *cursorAdapter) DisplayName() string { return "Cursor" }

func (a *cursorAdapter) Capabilities() Capabilities {
	return Capabilities{
		SeparateReferences: true,
		FileGlobs:          true,
	}
}

func (a *cursorAdapter) MarkerFile() string { return branding.MarkerName(a.Name()) }

func (a *cursorAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope != ScopeProject {
		return "", unsupportedScope(a.Name(), scope)
	}
	return filepath.Join(projectRoot, ".cursor", "rules"), nil
}

// ruleFiles returns the predictable rule file names for a bundle, main
// rule first.
func (a *cursorAdapter) ruleFiles(b *source.Bundle) []string {
	names := []string{b.Name + ".mdc"}
	for _, ref := range b.References {
		slug := strings.ReplaceAll(strings.TrimSuffix(ref.RelPath, ".md"), "/", "-")
		names = append(names, b.Name+"-"+slug+".mdc")
	}
	return names
}

func (a *cursorAdapter) Install(ctx InstallContext) (Result, error) {
	rulesDir, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	b := ctx.Bundle
	names := a.ruleFiles(b)
	markerPath := filepath.Join(rulesDir, a.MarkerFile())

	if HasConflict(filepath.Join(rulesDir, names[0]), markerPath) {
		return failure("%s exists but is not managed by %s; move it aside and re-run",
			filepath.Join(rulesDir, names[0]), branding.CLIName()), nil
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(rulesDir, name))
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would install %d rules to %s", len(files), rulesDir)}, nil
	}

	if err := os.MkdirAll(rulesDir, userdata.DirPermNormal); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", rulesDir, err)
	}

	main := renderCursorRule(b.Description, true, content.StripDirectives(b.Instructions))
	if err := os.WriteFile(files[0], []byte(main), userdata.FilePermNormal); err != nil {
		return Result{}, fmt.Errorf("writing rule %s: %w", files[0], err)
	}

	for i, ref := range b.References {
		desc := fmt.Sprintf("%s reference: %s", b.Name, strings.TrimSuffix(ref.RelPath, ".md"))
		rule := renderCursorRule(desc, false, content.StripDirectives(content.StripFrontmatter(ref.Content)))
		if err := os.WriteFile(files[i+1], []byte(rule), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing rule %s: %w", files[i+1], err)
		}
	}

	if err := WriteMarker(rulesDir, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	return Result{Success: true, Files: files, Message: fmt.Sprintf("installed %d rules to %s", len(files), rulesDir)}, nil
}

func (a *cursorAdapter) Uninstall(ctx InstallContext) (Result, error) {
	rulesDir, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	if !HasMarker(rulesDir, a.MarkerFile()) {
		return Result{Success: true, Message: fmt.Sprintf("nothing to remove at %s", rulesDir)}, nil
	}

	var files []string
	for _, name := range a.ruleFiles(ctx.Bundle) {
		files = append(files, filepath.Join(rulesDir, name))
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would remove %d rules from %s", len(files), rulesDir)}, nil
	}

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return Result{}, fmt.Errorf("removing rule %s: %w", path, err)
		}
	}
	if err := RemoveMarker(rulesDir, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	// .cursor/rules may hold user-authored rules; remove only when empty.
	removeIfEmpty(rulesDir)
	removeIfEmpty(filepath.Dir(rulesDir))

	return Result{Success: true, Files: files, Message: fmt.Sprintf("removed %d rules from %s", len(files), rulesDir)}, nil
}

func (a *cursorAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	rulesDir, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	return HasMarker(rulesDir, a.MarkerFile()), nil
}

// cursorRuleMeta is the .mdc metadata header Cursor reads.
type cursorRuleMeta struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

// renderCursorRule synthesizes an .mdc document: metadata header plus the
// transformed body, truncated to the rule budget.
func renderCursorRule(description string, alwaysApply bool, body string) string {
	meta := cursorRuleMeta{Description: description, AlwaysApply: alwaysApply}
	header, err := yaml.Marshal(&meta)
	if err != nil {
		header = []byte("description: \"\"\nglobs: \"\"\nalwaysApply: false\n")
	}
	body = content.TruncateToLimit(strings.TrimSpace(body), cursorRuleLimit)
	return "---\n" + string(header) + "---\n\n" + body + "\n"
}

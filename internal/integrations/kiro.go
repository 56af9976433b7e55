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
)

// kiroAdapter decomposes the bundle into Kiro's role-specific spec
// documents: a requirements listing in EARS clause grammar, a design
// overview, and a task checklist. The generated documents live under
// .kiro/specs/<skill>/, a directory this adapter exclusively owns and
// deletes wholesale on uninstall.
type kiroAdapter struct{}

// NewKiro returns the Kiro adapter. Project scope only.
func NewKiro() Adapter { return &kiroAdapter{} }

func (a *kiroAdapter) Name() string        { return "kiro" }
func (a *kiroAdapter) DisplayName() string { return "Kiro" }

func (a *kiroAdapter) Capabilities() Capabilities {
	return Capabilities{WorkflowFiles: true}
}

func (a *kiroAdapter) MarkerFile() string { return branding.MarkerName(a.Name()) }

func (a *kiroAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope != ScopeProject {
		return "", unsupportedScope(a.Name(), scope)
	}
	return filepath.Join(projectRoot, ".kiro", "specs"), nil
}

func (a *kiroAdapter) Install(ctx InstallContext) (Result, error) {
	specsRoot, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	b := ctx.Bundle
	specDir := filepath.Join(specsRoot, b.Name)
	markerPath := filepath.Join(specDir, a.MarkerFile())

	if HasConflict(specDir, markerPath) {
		return failure("%s exists but is not managed by %s; move it aside and re-run",
			specDir, branding.CLIName()), nil
	}

	files := []string{
		filepath.Join(specDir, "requirements.md"),
		filepath.Join(specDir, "design.md"),
		filepath.Join(specDir, "tasks.md"),
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would generate spec documents in %s", specDir)}, nil
	}

	if err := os.MkdirAll(specDir, userdata.DirPermNormal); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", specDir, err)
	}

	docs := map[string]string{
		files[0]: generateRequirements(b),
		files[1]: generateDesign(b),
		files[2]: generateTasks(b),
	}
	for _, path := range files {
		if err := os.WriteFile(path, []byte(docs[path]), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := WriteMarker(specDir, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	return Result{Success: true, Files: files, Message: fmt.Sprintf("generated spec documents in %s", specDir)}, nil
}

func (a *kiroAdapter) Uninstall(ctx InstallContext) (Result, error) {
	specsRoot, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	specDir := filepath.Join(specsRoot, ctx.Bundle.Name)
	if !HasMarker(specDir, a.MarkerFile()) {
		return Result{Success: true, Message: fmt.Sprintf("nothing to remove at %s", specDir)}, nil
	}

	files := []string{specDir}
	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would delete %s", specDir)}, nil
	}

	if err := os.RemoveAll(specDir); err != nil {
		return Result{}, fmt.Errorf("removing %s: %w", specDir, err)
	}
	removeIfEmpty(specsRoot)
	removeIfEmpty(filepath.Dir(specsRoot))

	return Result{Success: true, Files: files, Message: fmt.Sprintf("deleted %s", specDir)}, nil
}

func (a *kiroAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	specsRoot, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	entries, err := os.ReadDir(specsRoot)
	if err != nil {
		return false, nil
	}
	for _, entry := range entries {
		if entry.IsDir() && HasMarker(filepath.Join(specsRoot, entry.Name()), a.MarkerFile()) {
			return true, nil
		}
	}
	return false, nil
}

// docSection is a top-level "## " section of the instructions document.
type docSection struct {
	Title string
	Body  string
}

// topLevelSections splits the instructions body into its "## " sections,
// ignoring everything before the first heading.
func topLevelSections(text string) []docSection {
	var sections []docSection
	parts := strings.Split("\n"+text, "\n## ")
	for _, part := range parts[1:] {
		title, body, _ := strings.Cut(part, "\n")
		sections = append(sections, docSection{
			Title: strings.TrimSpace(title),
			Body:  strings.TrimSpace(body),
		})
	}
	return sections
}

// firstSentence returns the opening sentence of a text block.
func firstSentence(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if idx := strings.Index(text, ". "); idx >= 0 {
		return text[:idx+1]
	}
	return text
}

// generateRequirements renders the EARS-style requirements listing. Each
// top-level section of the instructions becomes one requirement with an
// acceptance clause derived from the section's opening sentence.
func generateRequirements(b *source.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Requirements: %s\n\n%s\n", b.Name, b.Description)

	sections := topLevelSections(content.StripDirectives(b.Instructions))
	for i, sec := range sections {
		fmt.Fprintf(&sb, "\n## Requirement %d: %s\n\n", i+1, sec.Title)
		fmt.Fprintf(&sb, "WHEN the %s activity of the %s skill is performed, THE agent SHALL satisfy: %s\n",
			strings.ToLower(sec.Title), b.Name, firstSentence(sec.Body))
	}

	return sb.String()
}

// generateDesign renders the design overview and reference inventory.
func generateDesign(b *source.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Design: %s\n\n## Overview\n\n%s\n\n%s\n", b.Name, b.Description,
		firstSentence(topIntro(b.Instructions)))

	if len(b.References) > 0 {
		sb.WriteString("\n## Reference Material\n\n")
		for _, ref := range b.References {
			fmt.Fprintf(&sb, "- %s\n", ref.RelPath)
		}
	}

	sections := topLevelSections(b.Instructions)
	if len(sections) > 0 {
		sb.WriteString("\n## Workflow\n\n")
		for _, sec := range sections {
			fmt.Fprintf(&sb, "- **%s**: %s\n", sec.Title, firstSentence(sec.Body))
		}
	}

	return sb.String()
}

// generateTasks renders the implementation checklist from the sections
// and command fragments.
func generateTasks(b *source.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Tasks: %s\n\n", b.Name)

	n := 0
	for _, sec := range topLevelSections(b.Instructions) {
		n++
		fmt.Fprintf(&sb, "- [ ] %d. Complete the %s pass\n", n, strings.ToLower(sec.Title))
	}
	for _, cmd := range b.Commands {
		n++
		fmt.Fprintf(&sb, "- [ ] %d. Run the %s command workflow\n", n, cmd.Name)
	}

	return sb.String()
}

// topIntro returns the prose between the document title and the first
// "## " section.
func topIntro(text string) string {
	text = content.StripDirectives(text)
	if idx := strings.Index(text, "\n## "); idx >= 0 {
		text = text[:idx]
	}
	// Drop the "# Title" line.
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

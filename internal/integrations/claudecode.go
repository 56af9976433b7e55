package integrations

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/userdata"
	"go.yaml.in/yaml/v3"
)

// claudeCodeAdapter installs the bundle as discrete files under the
// .claude tree: the skill directory with SKILL.md and references, and
// slash commands under commands/<skill>/.
type claudeCodeAdapter struct{}

// NewClaudeCode returns the claude-code adapter, the default target.
func NewClaudeCode() Adapter { return &claudeCodeAdapter{} }

func (a *claudeCodeAdapter) Name() string        { return "claude-code" }
func (a *claudeCodeAdapter) DisplayName() string { return "Claude Code" }

func (a *claudeCodeAdapter) Capabilities() Capabilities {
	return Capabilities{
		SlashCommands:      true,
		WorkflowFiles:      true,
		SeparateReferences: true,
	}
}

// MarkerFile keeps the bare prefix name shipped by the original
// single-target release, so upgrades recognize existing installs.
func (a *claudeCodeAdapter) MarkerFile() string { return branding.MarkerPrefix() }

func (a *claudeCodeAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope == ScopeProject {
		return filepath.Join(projectRoot, ".claude"), nil
	}
	home, err := userdata.UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude"), nil
}

func (a *claudeCodeAdapter) Install(ctx InstallContext) (Result, error) {
	root, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return Result{}, err
	}

	b := ctx.Bundle
	skillDir := filepath.Join(root, "skills", b.Name)
	commandsDir := filepath.Join(root, "commands", b.Name)
	markerPath := filepath.Join(root, a.MarkerFile())

	if HasConflict(skillDir, markerPath) {
		return failure("%s exists but is not managed by %s; move it aside and re-run",
			skillDir, branding.CLIName()), nil
	}

	var files []string
	files = append(files, filepath.Join(skillDir, "SKILL.md"))
	for _, ref := range b.References {
		files = append(files, filepath.Join(skillDir, "references", filepath.FromSlash(ref.RelPath)))
	}
	for _, cmd := range b.Commands {
		files = append(files, filepath.Join(commandsDir, cmd.Name+".md"))
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would install %s to %s", b.Name, root)}, nil
	}

	if err := os.MkdirAll(skillDir, userdata.DirPermNormal); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", skillDir, err)
	}
	skillDoc := renderFrontmatter(map[string]interface{}{
		"name":        b.Name,
		"description": b.Description,
	}) + b.Instructions
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(skillDoc), userdata.FilePermNormal); err != nil {
		return Result{}, fmt.Errorf("writing SKILL.md: %w", err)
	}

	for _, ref := range b.References {
		path := filepath.Join(skillDir, "references", filepath.FromSlash(ref.RelPath))
		if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
			return Result{}, fmt.Errorf("creating reference directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(ref.Content), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing reference %s: %w", ref.RelPath, err)
		}
	}

	// Command fragments keep their $ARGUMENTS placeholder; Claude Code
	// understands the source format natively.
	for _, cmd := range b.Commands {
		path := filepath.Join(commandsDir, cmd.Name+".md")
		if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
			return Result{}, fmt.Errorf("creating command directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(cmd.Content), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing command %s: %w", cmd.Name, err)
		}
	}

	if err := WriteMarker(root, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	return Result{Success: true, Files: files, Message: fmt.Sprintf("installed %s to %s", b.Name, root)}, nil
}

func (a *claudeCodeAdapter) Uninstall(ctx InstallContext) (Result, error) {
	root, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return Result{}, err
	}

	if !HasMarker(root, a.MarkerFile()) {
		return Result{Success: true, Message: fmt.Sprintf("nothing to remove at %s", root)}, nil
	}

	b := ctx.Bundle
	skillDir := filepath.Join(root, "skills", b.Name)
	commandsDir := filepath.Join(root, "commands", b.Name)
	files := []string{skillDir, commandsDir}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would remove %s from %s", b.Name, root)}, nil
	}

	if err := os.RemoveAll(skillDir); err != nil {
		return Result{}, fmt.Errorf("removing %s: %w", skillDir, err)
	}
	if err := os.RemoveAll(commandsDir); err != nil {
		return Result{}, fmt.Errorf("removing %s: %w", commandsDir, err)
	}
	if err := RemoveMarker(root, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	// Parents are shared with user content; remove only when empty.
	removeIfEmpty(filepath.Join(root, "skills"))
	removeIfEmpty(filepath.Join(root, "commands"))
	removeIfEmpty(root)

	return Result{Success: true, Files: files, Message: fmt.Sprintf("removed %s from %s", b.Name, root)}, nil
}

func (a *claudeCodeAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	root, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	return HasMarker(root, a.MarkerFile()), nil
}

// renderFrontmatter marshals metadata into a leading YAML block.
func renderFrontmatter(meta map[string]interface{}) string {
	data, err := yaml.Marshal(meta)
	if err != nil {
		// Flat string maps cannot fail to marshal.
		return "---\n---\n\n"
	}
	return "---\n" + string(data) + "---\n\n"
}

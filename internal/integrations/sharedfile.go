package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/content"
	"github.com/skilldock-labs/skilldock/internal/userdata"
)

// sharedFileAdapter merges the skill into a single well-known file the
// host reads and the user may hand-author. It never owns or truncates the
// whole file: all writes go through the marker-delimited section merge,
// and uninstall removes only its own span. Each instance uses delimiters
// embedding its adapter name, so two hosts reading the same physical file
// (codex and opencode both read AGENTS.md) coexist without collision.
type sharedFileAdapter struct {
	name        string
	displayName string
	caps        Capabilities

	projectRel string   // shared file path relative to the project root
	globalRel  []string // path segments under home; nil = no global scope
	limit      int      // section size budget; 0 = unlimited
}

// NewCodex returns the adapter for the Codex CLI, which reads AGENTS.md.
func NewCodex() Adapter {
	return &sharedFileAdapter{
		name:        "codex",
		displayName: "Codex CLI",
		caps:        Capabilities{SharedFile: true},
		projectRel:  "AGENTS.md",
		globalRel:   []string{".codex", "AGENTS.md"},
	}
}

// NewOpenCode returns the adapter for OpenCode. In project scope it reads
// the same AGENTS.md as codex; distinct markers keep the sections apart.
func NewOpenCode() Adapter {
	return &sharedFileAdapter{
		name:        "opencode",
		displayName: "OpenCode",
		caps:        Capabilities{SharedFile: true},
		projectRel:  "AGENTS.md",
		globalRel:   []string{".config", "opencode", "AGENTS.md"},
	}
}

// NewCopilot returns the adapter for GitHub Copilot's repository
// instructions file. Project scope only.
func NewCopilot() Adapter {
	return &sharedFileAdapter{
		name:        "copilot",
		displayName: "GitHub Copilot",
		caps:        Capabilities{SharedFile: true},
		projectRel:  filepath.Join(".github", "copilot-instructions.md"),
	}
}

// NewWindsurf returns the adapter for Windsurf, whose rules files carry a
// hard character limit.
func NewWindsurf() Adapter {
	return &sharedFileAdapter{
		name:        "windsurf",
		displayName: "Windsurf",
		caps:        Capabilities{SharedFile: true},
		projectRel:  ".windsurfrules",
		globalRel:   []string{".codeium", "windsurf", "memories", "global_rules.md"},
		limit:       6000,
	}
}

func (a *sharedFileAdapter) Name() string               { return a.name }
func (a *sharedFileAdapter) DisplayName() string        { return a.displayName }
func (a *sharedFileAdapter) Capabilities() Capabilities { return a.caps }

// MarkerFile satisfies the contract's naming convention; shared-file
// adapters track ownership with section delimiters, not a sentinel file.
func (a *sharedFileAdapter) MarkerFile() string { return branding.MarkerName(a.name) }

func (a *sharedFileAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope == ScopeProject {
		return filepath.Join(projectRoot, a.projectRel), nil
	}
	if a.globalRel == nil {
		return "", unsupportedScope(a.name, scope)
	}
	home, err := userdata.UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, a.globalRel...)...), nil
}

// section renders the managed span merged into the shared file.
func (a *sharedFileAdapter) section(ctx InstallContext) string {
	b := ctx.Bundle
	header := fmt.Sprintf("## Skill: %s\n\n%s\n\n", b.Name, b.Description)
	body := content.StripDirectives(b.Instructions)
	if a.limit > 0 {
		budget := a.limit - len(header)
		body = content.TruncateToLimit(body, budget)
	}
	return strings.TrimRight(header+body, "\n")
}

func (a *sharedFileAdapter) Install(ctx InstallContext) (Result, error) {
	path, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		if ctx.Scope == ScopeGlobal && a.globalRel == nil {
			return scopeFailure(err), nil
		}
		return Result{}, err
	}

	markers := content.MarkersFor(a.name)
	outcome, err := content.MergeIntoFile(path, a.section(ctx), markers, ctx.DryRun)
	if err != nil {
		return Result{}, err
	}

	if outcome.Action == content.MergeSkipped {
		return Result{Success: false, Message: outcome.Message}, nil
	}
	return Result{Success: true, Files: []string{path}, Message: outcome.Message}, nil
}

func (a *sharedFileAdapter) Uninstall(ctx InstallContext) (Result, error) {
	path, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		if ctx.Scope == ScopeGlobal && a.globalRel == nil {
			return scopeFailure(err), nil
		}
		return Result{}, err
	}

	markers := content.MarkersFor(a.name)
	outcome, err := content.RemoveSection(path, markers, ctx.DryRun)
	if err != nil {
		return Result{}, err
	}

	switch outcome.Action {
	case content.RemoveSkipped:
		return Result{Success: false, Message: outcome.Message}, nil
	case content.RemoveNothing:
		return Result{Success: true, Message: outcome.Message}, nil
	default:
		return Result{Success: true, Files: []string{path}, Message: outcome.Message}, nil
	}
}

func (a *sharedFileAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	path, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	markers := content.MarkersFor(a.name)
	text := string(data)
	return strings.Contains(text, markers.Start) && strings.Contains(text, markers.End), nil
}

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

// continueInputToken is Continue's template placeholder for user input,
// substituted for the source format's $ARGUMENTS token.
const continueInputToken = "{{{ input }}}"

// continueAdapter reshapes the bundle into Continue's .prompt envelope: a
// metadata header, system-message delimiters, and the Continue input
// placeholder. Prompts live in a dedicated directory, so no merging with
// user files is needed.
type continueAdapter struct{}

// NewContinue returns the Continue adapter.
func NewContinue() Adapter { return &continueAdapter{} }

func (a *continueAdapter) Name() string        { return "continue" }
func (a *continueAdapter) DisplayName() string { return "Continue" }

func (a *continueAdapter) Capabilities() Capabilities {
	return Capabilities{SlashCommands: true}
}

func (a *continueAdapter) MarkerFile() string { return branding.MarkerName(a.Name()) }

func (a *continueAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope == ScopeProject {
		return filepath.Join(projectRoot, ".continue", "prompts"), nil
	}
	home, err := userdata.UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".continue", "prompts"), nil
}

// promptFiles returns the predictable prompt file names for a bundle,
// main prompt first.
func (a *continueAdapter) promptFiles(b *source.Bundle) []string {
	names := []string{b.Name + ".prompt"}
	for _, cmd := range b.Commands {
		names = append(names, b.Name+"-"+cmd.Name+".prompt")
	}
	return names
}

func (a *continueAdapter) Install(ctx InstallContext) (Result, error) {
	dir, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return Result{}, err
	}

	b := ctx.Bundle
	names := a.promptFiles(b)
	markerPath := filepath.Join(dir, a.MarkerFile())

	if HasConflict(filepath.Join(dir, names[0]), markerPath) {
		return failure("%s exists but is not managed by %s; move it aside and re-run",
			filepath.Join(dir, names[0]), branding.CLIName()), nil
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(dir, name))
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would install %d prompts to %s", len(files), dir)}, nil
	}

	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", dir, err)
	}

	main := renderContinuePrompt(b.Name, b.Description,
		content.StripDirectives(b.Instructions), true)
	if err := os.WriteFile(files[0], []byte(main), userdata.FilePermNormal); err != nil {
		return Result{}, fmt.Errorf("writing prompt %s: %w", files[0], err)
	}

	for i, cmd := range b.Commands {
		body := content.ConvertArguments(cmd.Content, continueInputToken)
		prompt := renderContinuePrompt(b.Name+"-"+cmd.Name,
			fmt.Sprintf("%s command from the %s skill", cmd.Name, b.Name), body, false)
		if err := os.WriteFile(files[i+1], []byte(prompt), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing prompt %s: %w", files[i+1], err)
		}
	}

	if err := WriteMarker(dir, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	return Result{Success: true, Files: files, Message: fmt.Sprintf("installed %d prompts to %s", len(files), dir)}, nil
}

func (a *continueAdapter) Uninstall(ctx InstallContext) (Result, error) {
	dir, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return Result{}, err
	}

	if !HasMarker(dir, a.MarkerFile()) {
		return Result{Success: true, Message: fmt.Sprintf("nothing to remove at %s", dir)}, nil
	}

	var files []string
	for _, name := range a.promptFiles(ctx.Bundle) {
		files = append(files, filepath.Join(dir, name))
	}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would remove %d prompts from %s", len(files), dir)}, nil
	}

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return Result{}, fmt.Errorf("removing prompt %s: %w", path, err)
		}
	}
	if err := RemoveMarker(dir, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	removeIfEmpty(dir)
	removeIfEmpty(filepath.Dir(dir))

	return Result{Success: true, Files: files, Message: fmt.Sprintf("removed %d prompts from %s", len(files), dir)}, nil
}

func (a *continueAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	dir, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	return HasMarker(dir, a.MarkerFile()), nil
}

// renderContinuePrompt builds a .prompt document. The body lands inside
// <system> delimiters when it is instruction text rather than a template
// that already carries the input token.
func renderContinuePrompt(name, description, body string, asSystem bool) string {
	var sb strings.Builder
	sb.WriteString("name: " + name + "\n")
	sb.WriteString("description: " + description + "\n")
	sb.WriteString("---\n")
	body = strings.TrimSpace(body)
	if asSystem {
		sb.WriteString("<system>\n" + body + "\n</system>\n\n")
		sb.WriteString(continueInputToken + "\n")
	} else {
		sb.WriteString(body + "\n")
	}
	return sb.String()
}

package integrations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/content"
	"github.com/skilldock-labs/skilldock/internal/userdata"
)

const rooModesFile = ".roomodes"

// rooMode is the entry this adapter registers for itself. Foreign
// entries are never decoded into this shape; they travel through merges
// as raw JSON so fields and group forms this adapter does not understand
// survive rewrites untouched.
type rooMode struct {
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	RoleDefinition string   `json:"roleDefinition"`
	WhenToUse      string   `json:"whenToUse,omitempty"`
	Groups         []string `json:"groups"`
}

// parseRegistry splits a .roomodes document into its top-level fields
// and the customModes array, both kept as raw JSON.
func parseRegistry(data []byte) (map[string]json.RawMessage, []json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	var modes []json.RawMessage
	if raw, ok := doc["customModes"]; ok {
		if err := json.Unmarshal(raw, &modes); err != nil {
			return nil, nil, err
		}
	}
	return doc, modes, nil
}

// modeSlug reads the slug of a raw registry entry. Entries whose slug
// cannot be read are foreign and are preserved.
func modeSlug(raw json.RawMessage) string {
	var entry struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ""
	}
	return entry.Slug
}

// writeRegistry rewrites the .roomodes file with the given modes array,
// keeping every other top-level field as it was.
func writeRegistry(path string, doc map[string]json.RawMessage, modes []json.RawMessage) error {
	if modes == nil {
		modes = []json.RawMessage{}
	}
	modesJSON, err := json.Marshal(modes)
	if err != nil {
		return fmt.Errorf("marshaling %s modes: %w", rooModesFile, err)
	}
	doc["customModes"] = modesJSON

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", rooModesFile, err)
	}
	if err := os.WriteFile(path, append(out, '\n'), userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// rooAdapter installs rule files under an exclusively owned
// .roo/rules-<skill>/ directory and registers a custom mode in the
// project's .roomodes JSON registry. The registry is shared: entries of
// foreign origin are preserved on every merge, and the file is deleted on
// uninstall only when no entries of any origin remain.
type rooAdapter struct{}

// NewRoo returns the Roo Code adapter. Project scope only.
func NewRoo() Adapter { return &rooAdapter{} }

func (a *rooAdapter) Name() string        { return "roo" }
func (a *rooAdapter) DisplayName() string { return "Roo Code" }

func (a *rooAdapter) Capabilities() Capabilities {
	return Capabilities{
		WorkflowFiles:      true,
		SeparateReferences: true,
	}
}

func (a *rooAdapter) MarkerFile() string { return branding.MarkerName(a.Name()) }

func (a *rooAdapter) InstallPath(scope Scope, projectRoot string) (string, error) {
	if scope != ScopeProject {
		return "", unsupportedScope(a.Name(), scope)
	}
	return filepath.Join(projectRoot, ".roo"), nil
}

func (a *rooAdapter) Install(ctx InstallContext) (Result, error) {
	root, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	b := ctx.Bundle
	rulesDir := filepath.Join(root, "rules-"+b.Name)
	modesPath := filepath.Join(ctx.ProjectRoot, rooModesFile)
	markerPath := filepath.Join(root, a.MarkerFile())

	if HasConflict(rulesDir, markerPath) {
		return failure("%s exists but is not managed by %s; move it aside and re-run",
			rulesDir, branding.CLIName()), nil
	}

	files := []string{filepath.Join(rulesDir, "skill.md")}
	for _, ref := range b.References {
		files = append(files, filepath.Join(rulesDir, "references", filepath.FromSlash(ref.RelPath)))
	}
	files = append(files, modesPath)

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would install %s rules and register mode %q", b.Name, b.Name)}, nil
	}

	if err := os.MkdirAll(rulesDir, userdata.DirPermNormal); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", rulesDir, err)
	}
	body := content.StripDirectives(b.Instructions)
	if err := os.WriteFile(files[0], []byte(body), userdata.FilePermNormal); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", files[0], err)
	}
	for i, ref := range b.References {
		path := files[i+1]
		if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
			return Result{}, fmt.Errorf("creating reference directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(ref.Content), userdata.FilePermNormal); err != nil {
			return Result{}, fmt.Errorf("writing reference %s: %w", ref.RelPath, err)
		}
	}

	warning, err := a.mergeMode(modesPath, b.Name, b.Description)
	if err != nil {
		return Result{}, err
	}

	if err := WriteMarker(root, a.MarkerFile()); err != nil {
		return Result{}, err
	}

	msg := fmt.Sprintf("installed %s rules and registered mode %q", b.Name, b.Name)
	if warning != "" {
		msg += "; " + warning
	}
	return Result{Success: true, Files: files, Message: msg}, nil
}

// mergeMode upserts this adapter's entry in the .roomodes registry.
// Foreign entries and unrecognized top-level fields pass through as raw
// JSON. A file that does not parse as the expected object is backed up
// and reset to an empty registry before the merge; the returned warning
// describes the reset.
func (a *rooAdapter) mergeMode(modesPath, slug, description string) (string, error) {
	doc := map[string]json.RawMessage{}
	var modes []json.RawMessage
	warning := ""

	data, err := os.ReadFile(modesPath)
	switch {
	case os.IsNotExist(err):
		// fresh registry
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", modesPath, err)
	default:
		doc, modes, err = parseRegistry(data)
		if err != nil {
			if bakErr := os.WriteFile(modesPath+".bak", data, userdata.FilePermNormal); bakErr != nil {
				return "", fmt.Errorf("backing up malformed %s: %w", modesPath, bakErr)
			}
			doc = map[string]json.RawMessage{}
			modes = nil
			warning = fmt.Sprintf("warning: %s was malformed and has been reset (backup written to %s.bak)", rooModesFile, rooModesFile)
		}
	}

	kept := modes[:0]
	for _, raw := range modes {
		if modeSlug(raw) != slug {
			kept = append(kept, raw)
		}
	}
	own, err := json.Marshal(rooMode{
		Slug:           slug,
		Name:           slug,
		RoleDefinition: description,
		WhenToUse:      description,
		Groups:         []string{"read"},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling mode %q: %w", slug, err)
	}
	kept = append(kept, json.RawMessage(own))

	if err := writeRegistry(modesPath, doc, kept); err != nil {
		return "", err
	}
	return warning, nil
}

func (a *rooAdapter) Uninstall(ctx InstallContext) (Result, error) {
	root, err := a.InstallPath(ctx.Scope, ctx.ProjectRoot)
	if err != nil {
		return scopeFailure(err), nil
	}

	if !HasMarker(root, a.MarkerFile()) {
		return Result{Success: true, Message: fmt.Sprintf("nothing to remove at %s", root)}, nil
	}

	b := ctx.Bundle
	rulesDir := filepath.Join(root, "rules-"+b.Name)
	modesPath := filepath.Join(ctx.ProjectRoot, rooModesFile)
	files := []string{rulesDir, modesPath}

	if ctx.DryRun {
		return Result{Success: true, Files: files, Message: fmt.Sprintf("would remove %s rules and mode %q", b.Name, b.Name)}, nil
	}

	if err := os.RemoveAll(rulesDir); err != nil {
		return Result{}, fmt.Errorf("removing %s: %w", rulesDir, err)
	}
	if err := a.removeMode(modesPath, b.Name); err != nil {
		return Result{}, err
	}
	if err := RemoveMarker(root, a.MarkerFile()); err != nil {
		return Result{}, err
	}
	removeIfEmpty(root)

	return Result{Success: true, Files: files, Message: fmt.Sprintf("removed %s rules and mode %q", b.Name, b.Name)}, nil
}

// removeMode drops this adapter's entry from the registry. Foreign
// entries are written back untouched; the file is deleted only when no
// entries of any origin remain and the document holds nothing else.
func (a *rooAdapter) removeMode(modesPath, slug string) error {
	data, err := os.ReadFile(modesPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", modesPath, err)
	}

	doc, modes, err := parseRegistry(data)
	if err != nil {
		// A registry we cannot parse is not ours to rewrite.
		return nil
	}

	kept := modes[:0]
	for _, raw := range modes {
		if modeSlug(raw) != slug {
			kept = append(kept, raw)
		}
	}

	if len(kept) == 0 && len(doc) <= 1 {
		if err := os.Remove(modesPath); err != nil {
			return fmt.Errorf("removing %s: %w", modesPath, err)
		}
		return nil
	}
	return writeRegistry(modesPath, doc, kept)
}

func (a *rooAdapter) Installed(scope Scope, projectRoot string) (bool, error) {
	root, err := a.InstallPath(scope, projectRoot)
	if err != nil {
		return false, err
	}
	return HasMarker(root, a.MarkerFile()), nil
}

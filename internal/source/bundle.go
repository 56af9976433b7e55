package source

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/skilldock-labs/skilldock/internal/content"
)

const (
	skillFileName = "SKILL.md"
	referencesDir = "references"
	commandsDir   = "commands"
)

// Bundle is the canonical content source. It is read-only and outlives
// every install/uninstall operation.
type Bundle struct {
	Name        string
	Description string
	Version     string

	// Instructions is the SKILL.md body with frontmatter removed.
	Instructions string

	References []Reference
	Commands   []Command
}

// Reference is a supporting document, addressed by its slash-separated
// path relative to the references directory (e.g., "testing/mocks.md").
type Reference struct {
	RelPath string
	Content string
}

// Command is a slash-command/prompt fragment named after its file.
type Command struct {
	Name    string
	Content string
}

// Load reads a bundle from a directory on disk.
func Load(dir string) (*Bundle, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("bundle directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a bundle from any filesystem rooted at the bundle
// directory. The SKILL.md frontmatter is validated against the embedded
// schema before the bundle is returned.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	raw, err := fs.ReadFile(fsys, skillFileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", skillFileName, err)
	}

	meta, err := parseFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s frontmatter: %w", skillFileName, err)
	}

	if err := validateMetadata(meta); err != nil {
		return nil, err
	}

	b := &Bundle{
		Name:         meta["name"].(string),
		Description:  meta["description"].(string),
		Version:      meta["version"].(string),
		Instructions: content.StripFrontmatter(string(raw)),
	}

	if err := loadReferences(fsys, b); err != nil {
		return nil, err
	}
	if err := loadCommands(fsys, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Reference returns the reference with the given relative path, or nil.
func (b *Bundle) Reference(relPath string) *Reference {
	for i := range b.References {
		if b.References[i].RelPath == relPath {
			return &b.References[i]
		}
	}
	return nil
}

func loadReferences(fsys fs.FS, b *Bundle) error {
	if _, err := fs.Stat(fsys, referencesDir); err != nil {
		return nil // references are optional
	}

	err := fs.WalkDir(fsys, referencesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading reference %s: %w", p, err)
		}
		rel := strings.TrimPrefix(p, referencesDir+"/")
		b.References = append(b.References, Reference{RelPath: rel, Content: string(data)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking references: %w", err)
	}

	sort.Slice(b.References, func(i, j int) bool {
		return b.References[i].RelPath < b.References[j].RelPath
	})
	return nil
}

func loadCommands(fsys fs.FS, b *Bundle) error {
	entries, err := fs.ReadDir(fsys, commandsDir)
	if err != nil {
		return nil // commands are optional
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(commandsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading command %s: %w", entry.Name(), err)
		}
		b.Commands = append(b.Commands, Command{
			Name:    strings.TrimSuffix(entry.Name(), ".md"),
			Content: string(data),
		})
	}

	sort.Slice(b.Commands, func(i, j int) bool {
		return b.Commands[i].Name < b.Commands[j].Name
	})
	return nil
}

package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/userdata"
)

// Markers is a pair of HTML-comment delimiters bracketing a managed
// section inside a file the installer does not fully own. A valid file
// contains either both delimiters or neither; a file with exactly one is
// damaged and is never rewritten.
type Markers struct {
	Start string
	End   string
}

// MarkersFor returns the delimiter pair for an adapter. The adapter name
// is embedded in the delimiter strings so two adapters writing to the
// same physical file never collide.
func MarkersFor(adapter string) Markers {
	up := strings.ToUpper(branding.CLIName())
	return Markers{
		Start: fmt.Sprintf("<!-- %s:%s:START -->", up, adapter),
		End:   fmt.Sprintf("<!-- %s:%s:END -->", up, adapter),
	}
}

// Wrap brackets text with the marker pair.
func (m Markers) Wrap(text string) string {
	return m.Start + "\n" + text + "\n" + m.End
}

// MergeAction describes the outcome of a MergeIntoFile call.
type MergeAction string

const (
	MergeCreated  MergeAction = "created"
	MergeReplaced MergeAction = "replaced"
	MergeAppended MergeAction = "appended"
	MergeSkipped  MergeAction = "skipped"
)

// MergeOutcome reports what MergeIntoFile did (or would do, under dry-run).
type MergeOutcome struct {
	Action  MergeAction
	Message string
}

// RemoveAction describes the outcome of a RemoveSection call.
type RemoveAction string

const (
	RemoveNothing RemoveAction = "nothing"
	RemoveTrimmed RemoveAction = "trimmed"
	RemoveDeleted RemoveAction = "deleted"
	RemoveSkipped RemoveAction = "skipped"
)

// RemoveOutcome reports what RemoveSection did (or would do, under dry-run).
type RemoveOutcome struct {
	Action  RemoveAction
	Message string
}

// MergeIntoFile idempotently merges a marker-wrapped section into the file
// at path. Four outcomes:
//
//   - created: the file does not exist or holds only whitespace; it is
//     written with just the wrapped section. A pre-existing whitespace
//     file is backed up first.
//   - skipped: exactly one delimiter is present; the file is damaged and
//     is left completely untouched.
//   - replaced: both delimiters are present; the span between them,
//     delimiters included, is swapped for the new wrapped section.
//   - appended: no delimiters but other content; a blank-line separator
//     and the wrapped section are appended after the existing bytes
//     verbatim, so RemoveSection can restore them exactly.
//
// A .bak sibling holding the exact pre-edit bytes is written before any
// destructive modification. Under dryRun no file is created, modified,
// or backed up.
func MergeIntoFile(path, section string, m Markers, dryRun bool) (MergeOutcome, error) {
	wrapped := m.Wrap(section)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return MergeOutcome{}, fmt.Errorf("reading %s: %w", path, err)
	}
	existed := err == nil

	text := string(data)
	if !existed || strings.TrimSpace(text) == "" {
		if !dryRun {
			if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
				return MergeOutcome{}, fmt.Errorf("creating directory for %s: %w", path, err)
			}
			if existed {
				if err := writeWithBackup(path, data, wrapped+"\n"); err != nil {
					return MergeOutcome{}, err
				}
			} else if err := os.WriteFile(path, []byte(wrapped+"\n"), userdata.FilePermNormal); err != nil {
				return MergeOutcome{}, fmt.Errorf("writing %s: %w", path, err)
			}
		}
		return MergeOutcome{Action: MergeCreated, Message: fmt.Sprintf("created %s", path)}, nil
	}

	hasStart := strings.Contains(text, m.Start)
	hasEnd := strings.Contains(text, m.End)

	if hasStart != hasEnd {
		return MergeOutcome{
			Action: MergeSkipped,
			Message: fmt.Sprintf("%s has a damaged marker pair (one of %q/%q is missing); fix the file manually and re-run",
				path, m.Start, m.End),
		}, nil
	}

	if hasStart && hasEnd {
		if dryRun {
			return MergeOutcome{Action: MergeReplaced, Message: fmt.Sprintf("would replace managed section in %s", path)}, nil
		}
		start := strings.Index(text, m.Start)
		end := strings.Index(text, m.End) + len(m.End)
		updated := text[:start] + wrapped + text[end:]
		if err := writeWithBackup(path, data, updated); err != nil {
			return MergeOutcome{}, err
		}
		return MergeOutcome{Action: MergeReplaced, Message: fmt.Sprintf("replaced managed section in %s", path)}, nil
	}

	if dryRun {
		return MergeOutcome{Action: MergeAppended, Message: fmt.Sprintf("would append managed section to %s", path)}, nil
	}
	// The separator goes after the existing bytes untouched; RemoveSection
	// strips exactly this separator to restore them.
	updated := text + "\n\n" + wrapped + "\n"
	if err := writeWithBackup(path, data, updated); err != nil {
		return MergeOutcome{}, err
	}
	return MergeOutcome{Action: MergeAppended, Message: fmt.Sprintf("appended managed section to %s", path)}, nil
}

// RemoveSection removes the marker-delimited span from the file at path,
// undoing MergeIntoFile. The file is deleted only when removal leaves no
// content. A file with exactly one delimiter is damaged and left
// untouched. Missing files and files without markers are reported as
// having nothing to remove.
func RemoveSection(path string, m Markers, dryRun bool) (RemoveOutcome, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return RemoveOutcome{Action: RemoveNothing, Message: fmt.Sprintf("%s does not exist, nothing to remove", path)}, nil
	}
	if err != nil {
		return RemoveOutcome{}, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	hasStart := strings.Contains(text, m.Start)
	hasEnd := strings.Contains(text, m.End)

	if hasStart != hasEnd {
		return RemoveOutcome{
			Action: RemoveSkipped,
			Message: fmt.Sprintf("%s has a damaged marker pair (one of %q/%q is missing); fix the file manually and re-run",
				path, m.Start, m.End),
		}, nil
	}
	if !hasStart {
		return RemoveOutcome{Action: RemoveNothing, Message: fmt.Sprintf("no managed section in %s", path)}, nil
	}

	start := strings.Index(text, m.Start)
	end := strings.Index(text, m.End) + len(m.End)

	// Undo the separator MergeIntoFile added around the section.
	before := strings.TrimSuffix(text[:start], "\n\n")
	after := strings.TrimPrefix(text[end:], "\n")
	remainder := before + after
	if before == "" {
		remainder = strings.TrimLeft(remainder, "\n")
	}

	if strings.TrimSpace(remainder) == "" {
		if dryRun {
			return RemoveOutcome{Action: RemoveDeleted, Message: fmt.Sprintf("would delete %s (no content remains)", path)}, nil
		}
		if err := os.Remove(path); err != nil {
			return RemoveOutcome{}, fmt.Errorf("removing %s: %w", path, err)
		}
		return RemoveOutcome{Action: RemoveDeleted, Message: fmt.Sprintf("deleted %s (no content remained)", path)}, nil
	}

	if dryRun {
		return RemoveOutcome{Action: RemoveTrimmed, Message: fmt.Sprintf("would remove managed section from %s", path)}, nil
	}
	if err := writeWithBackup(path, data, remainder); err != nil {
		return RemoveOutcome{}, err
	}
	return RemoveOutcome{Action: RemoveTrimmed, Message: fmt.Sprintf("removed managed section from %s", path)}, nil
}

// writeWithBackup writes a .bak sibling with the original bytes, then
// overwrites path. The backup write completes before the overwrite begins.
func writeWithBackup(path string, original []byte, updated string) error {
	if err := os.WriteFile(path+".bak", original, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing backup %s.bak: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(updated), userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

package integrations

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skilldock-labs/skilldock/internal/branding"
	"github.com/skilldock-labs/skilldock/internal/userdata"
)

// excludedNames are files/directories skipped during recursive copy.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// CopyRecursive copies the src subtree to dst, creating directories as
// needed and overwriting existing files. Symlinks and special files are
// skipped.
func CopyRecursive(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyRecursive(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// CollectFiles enumerates the destination paths CopyRecursive would
// produce, without writing anything. Used for dry-run and listing.
func CollectFiles(src, dst string) ([]string, error) {
	var files []string

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			sub, err := CollectFiles(srcPath, dstPath)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		} else if entry.Type().IsRegular() {
			files = append(files, dstPath)
		}
	}

	return files, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}

// WriteMarker writes the ownership sentinel file at root.
func WriteMarker(root, name string) error {
	if err := os.MkdirAll(root, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating %s: %w", root, err)
	}
	note := fmt.Sprintf("Managed by %s. Do not edit; this file marks installed artifacts for clean removal.\n",
		branding.CLIName())
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte(note), userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing marker %s: %w", path, err)
	}
	return nil
}

// HasMarker reports whether the ownership sentinel exists at root.
func HasMarker(root, name string) bool {
	_, err := os.Stat(filepath.Join(root, name))
	return err == nil
}

// RemoveMarker deletes the ownership sentinel. Missing markers are not an
// error.
func RemoveMarker(root, name string) error {
	err := os.Remove(filepath.Join(root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing marker in %s: %w", root, err)
	}
	return nil
}

// HasConflict reports whether path exists without the ownership marker at
// markerPath: content is present that this installer did not create and
// must not overwrite blindly.
func HasConflict(path, markerPath string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	_, err := os.Stat(markerPath)
	return err != nil
}

// removeIfEmpty deletes a directory only when it holds no entries. Used
// on uninstall to clean up parents the adapter does not exclusively own.
func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}

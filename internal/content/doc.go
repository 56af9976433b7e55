// Package content provides the pure text transformations applied to
// canonical skill documents before they are projected into a host's
// configuration format: frontmatter and directive stripping, size-budget
// truncation, and marker-delimited section merging inside shared files
// the installer does not own.
package content

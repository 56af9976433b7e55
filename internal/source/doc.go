// Package source loads the canonical skill bundle the installer projects
// into each host format: a SKILL.md instructions document with YAML
// frontmatter, optional reference documents (flat or namespaced by
// sub-topic), and optional command fragments. The bundle is immutable
// input; adapters read it and never mutate it. A default bundle is
// embedded in the binary and can be overridden with a directory on disk.
package source

package integrations

import (
	"fmt"

	"github.com/skilldock-labs/skilldock/internal/source"
)

// Scope selects where an install lands: a user-wide location or a single
// project's working tree.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// InstallContext carries the per-invocation inputs of an install or
// uninstall operation. It is constructed by the CLI and never persisted.
type InstallContext struct {
	Bundle      *source.Bundle
	Scope       Scope
	ProjectRoot string // required for project scope, ignored otherwise
	DryRun      bool
}

// Result reports the outcome of an install or uninstall. Files lists the
// paths affected, or that would be affected under dry-run. Expected
// failures (unsupported scope, conflicts, damaged markers) are returned
// as Success=false with a message, never as errors; errors are reserved
// for filesystem problems outside the installer's control.
type Result struct {
	Success bool
	Files   []string
	Message string
}

// Capabilities describes what a host format can represent. The flags are
// reported to discovery surfaces only; install/uninstall logic must never
// branch on them.
type Capabilities struct {
	SlashCommands      bool // host has an invocable command/prompt concept
	WorkflowFiles      bool // host loads auxiliary workflow documents
	SeparateReferences bool // references install as their own files
	FileGlobs          bool // host can scope rules to file patterns
	SharedFile         bool // artifacts merge into one user-owned file
}

// Adapter maps the canonical bundle onto one host's configuration
// conventions. Construction is side-effect-free; all filesystem effects
// happen inside Install and Uninstall, both of which are idempotent.
type Adapter interface {
	// Name is the stable lookup key, unique within a Registry.
	Name() string
	DisplayName() string
	Capabilities() Capabilities

	// MarkerFile is the ownership sentinel file name written at the
	// adapter's install root.
	MarkerFile() string

	// InstallPath resolves the install root for a scope without touching
	// the filesystem. Adapters that do not support a scope return an error
	// here; Install and Uninstall translate that into a failure Result.
	InstallPath(scope Scope, projectRoot string) (string, error)

	Install(ctx InstallContext) (Result, error)
	Uninstall(ctx InstallContext) (Result, error)

	// Installed reports whether this adapter's artifacts exist at the
	// resolved root. Used by status/discovery surfaces.
	Installed(scope Scope, projectRoot string) (bool, error)
}

// failure builds an expected-condition failure Result.
func failure(format string, args ...interface{}) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// unsupportedScope is the shared error for InstallPath on a scope the
// adapter cannot serve.
func unsupportedScope(name string, scope Scope) error {
	return fmt.Errorf("%s does not support %s scope", name, scope)
}

// scopeFailure converts an InstallPath error into the non-throwing
// failure Result required for unsupported scopes.
func scopeFailure(err error) Result {
	return Result{Success: false, Message: err.Error()}
}

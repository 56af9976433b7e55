// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	MarkerPrefix string `yaml:"marker_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubRepo   string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "skilldock",
			DisplayName:  "Skilldock",
			Description:  "Installs skill bundles into the native config layouts of AI coding assistants",
			HomeDir:      ".skilldock",
			EnvPrefix:    "SKILLDOCK",
			MarkerPrefix: ".skilldock",
			GoModule:     "github.com/skilldock-labs/skilldock",
			GitHubRepo:   "skilldock-labs/skilldock",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "skilldock").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Skilldock").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".skilldock").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SKILLDOCK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// MarkerPrefix returns the leading component of ownership marker file
// names (e.g., ".skilldock", producing ".skilldock-cursor").
func MarkerPrefix() string { load(); return defaults.MarkerPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "SKILLDOCK_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

// MarkerName returns the ownership marker file name for an adapter,
// e.g., MarkerName("cursor") → ".skilldock-cursor".
func MarkerName(adapter string) string {
	load()
	return defaults.MarkerPrefix + "-" + adapter
}

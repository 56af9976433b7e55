package cli

import (
	"fmt"
	"strings"

	"github.com/skilldock-labs/skilldock/internal/config"
	"github.com/skilldock-labs/skilldock/internal/integrations"
	"github.com/skilldock-labs/skilldock/internal/source"
	"github.com/spf13/cobra"
)

var (
	installTools   string
	installGlobal  bool
	installDryRun  bool
	installProject string
	installSource  string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the skill bundle for one or more tools",
	Long: `Install the skill bundle into each selected tool's configuration layout.
Targets are independent: a failure for one tool never blocks the others.
With no --tool flag the configured default tool is used.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installTools, "tool", "t", "", "Comma-separated tool names (see 'tools' for the list)")
	installCmd.Flags().BoolVarP(&installGlobal, "global", "g", false, "Install to the user-wide location instead of the project")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be written without touching the filesystem")
	installCmd.Flags().StringVar(&installProject, "project", ".", "Project root for project-scope installs")
	installCmd.Flags().StringVar(&installSource, "source", "", "Load the bundle from a directory instead of the embedded default")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	return runTargets(cmd, "install", func(a integrations.Adapter, ctx integrations.InstallContext) (integrations.Result, error) {
		return a.Install(ctx)
	})
}

// targetOp is one adapter operation applied uniformly across the
// selected tools.
type targetOp func(integrations.Adapter, integrations.InstallContext) (integrations.Result, error)

// runTargets loads the bundle and applies op to each selected target in
// turn. Targets are fully independent: an unknown tool name or a failing
// install for one never blocks the others. The summary error reports how
// many failed.
func runTargets(cmd *cobra.Command, verb string, op targetOp) error {
	bundle, err := loadBundle()
	if err != nil {
		return err
	}

	reg := integrations.NewDefault()
	names := selectedToolNames()

	ctx := integrations.InstallContext{
		Bundle:      bundle,
		Scope:       integrations.ScopeProject,
		ProjectRoot: installProject,
		DryRun:      installDryRun,
	}
	if installGlobal {
		ctx.Scope = integrations.ScopeGlobal
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range names {
		a, err := reg.Get(name)
		if err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, err)
			failed++
			continue
		}
		res, err := op(a, ctx)
		if err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", a.Name(), err)
			failed++
			continue
		}
		if !res.Success {
			fmt.Fprintf(out, "  ✗ %s: %s\n", a.Name(), res.Message)
			failed++
			continue
		}
		fmt.Fprintf(out, "  ✓ %s: %s\n", a.Name(), res.Message)
		if installDryRun {
			for _, f := range res.Files {
				fmt.Fprintf(out, "      %s\n", f)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%s failed for %d of %d tools", verb, failed, len(names))
	}
	return nil
}

// loadBundle reads the bundle from --source, or falls back to the copy
// embedded in the binary.
func loadBundle() (*source.Bundle, error) {
	if installSource != "" {
		b, err := source.Load(installSource)
		if err != nil {
			return nil, fmt.Errorf("loading bundle from %s: %w", installSource, err)
		}
		return b, nil
	}
	return source.LoadEmbedded()
}

// selectedToolNames resolves the --tool list, falling back to the
// configured default tool and then the built-in default. Names are not
// validated here; unknown names become per-target failures.
func selectedToolNames() []string {
	names := splitTools(installTools)
	if len(names) > 0 {
		return names
	}
	config.Load()
	if def := config.Get(config.KeyDefaultTool); def != "" {
		return []string{def}
	}
	return []string{integrations.DefaultTool}
}

func splitTools(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

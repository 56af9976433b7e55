package cli

import (
	"github.com/skilldock-labs/skilldock/internal/integrations"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the skill bundle from one or more tools",
	Long: `Remove every artifact a previous install created, restoring shared files
to their prior content. Files and sections not owned by this tool are left
untouched. Uninstalling a tool that was never installed succeeds quietly.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVarP(&installTools, "tool", "t", "", "Comma-separated tool names (see 'tools' for the list)")
	uninstallCmd.Flags().BoolVarP(&installGlobal, "global", "g", false, "Uninstall from the user-wide location instead of the project")
	uninstallCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be removed without touching the filesystem")
	uninstallCmd.Flags().StringVar(&installProject, "project", ".", "Project root for project-scope uninstalls")
	uninstallCmd.Flags().StringVar(&installSource, "source", "", "Load the bundle from a directory instead of the embedded default")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	return runTargets(cmd, "uninstall", func(a integrations.Adapter, ctx integrations.InstallContext) (integrations.Result, error) {
		return a.Uninstall(ctx)
	})
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/skilldock-labs/skilldock/internal/integrations"
	"github.com/spf13/cobra"
)

var (
	statusGlobal  bool
	statusProject string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which tools have the bundle installed",
	Long:  `Check every supported tool for an existing install in the selected scope.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusGlobal, "global", "g", false, "Check the user-wide location instead of the project")
	statusCmd.Flags().StringVar(&statusProject, "project", ".", "Project root for project-scope checks")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	reg := integrations.NewDefault()

	scope := integrations.ScopeProject
	if statusGlobal {
		scope = integrations.ScopeGlobal
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS")
	for _, info := range reg.List() {
		a, err := reg.Get(info.Name)
		if err != nil {
			return err
		}

		state := "not installed"
		installed, err := a.Installed(scope, statusProject)
		switch {
		case err != nil:
			// Scope the adapter cannot serve, or an unreadable root.
			state = "unavailable"
		case installed:
			state = "installed"
		}
		fmt.Fprintf(w, "%s\t%s\n", info.Name, state)
	}
	return w.Flush()
}

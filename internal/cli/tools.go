package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/skilldock-labs/skilldock/internal/integrations"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List supported tools",
	Long:  `List every tool this build can install to, with its format capabilities.`,
	Args:  cobra.NoArgs,
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	reg := integrations.NewDefault()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tTOOL\tCAPABILITIES")
	for _, info := range reg.List() {
		name := info.Name
		if name == integrations.DefaultTool {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, info.DisplayName, capabilitySummary(info.Capabilities))
	}
	return w.Flush()
}

func capabilitySummary(c integrations.Capabilities) string {
	var caps []string
	if c.SlashCommands {
		caps = append(caps, "commands")
	}
	if c.WorkflowFiles {
		caps = append(caps, "workflows")
	}
	if c.SeparateReferences {
		caps = append(caps, "references")
	}
	if c.FileGlobs {
		caps = append(caps, "globs")
	}
	if c.SharedFile {
		caps = append(caps, "shared-file")
	}
	if len(caps) == 0 {
		return "-"
	}
	return strings.Join(caps, ", ")
}

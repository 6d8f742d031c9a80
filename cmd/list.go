package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/gurisko/envswitch/internal/registry"
	"github.com/spf13/cobra"
)

type listResp struct {
	Environments []*registry.Environment `json:"environments"`
	Count        int                     `json:"count"`
}

var (
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List environments",
	Long: `List environments sorted by name.

Examples:
  envswitch list                 # List all environments
  envswitch list --search api    # Match name, description or path (case-insensitive)
  envswitch list --json          # Output JSON for piping`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by name, description or path")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	envs, err := openRegistry().List(listSearch)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return printJSON(out, listResp{Environments: envs, Count: len(envs)})
	}

	if len(envs) == 0 {
		fmt.Fprintln(out, "No environments found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUSES\tPATH\tDESCRIPTION")
	for _, env := range envs {
		desc := truncate(env.Description, 40)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", env.Name, env.UseCount, env.ProjectPath, desc)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %d environment(s)\n", len(envs))
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/gurisko/envswitch/internal/registry"
	"github.com/spf13/cobra"
)

type historyResp struct {
	Entries []registry.HistoryEntry `json:"entries"`
	Count   int                     `json:"count"`
}

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent switches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	entries, err := openRegistry().History(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		return printJSON(out, historyResp{Entries: entries, Count: len(entries)})
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tENVIRONMENT\tCOMMANDS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.Timestamp.Local().Format(time.DateTime), e.Environment, e.CommandCount)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	statsTop  int
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsTop, "top", 5, "number of most used environments to show (0 = all)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openRegistry().Stats(statsTop)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), st)
	}

	d := &detail{title: "Usage"}
	d.add("Environments", fmt.Sprint(st.Environments))
	d.add("Switches", fmt.Sprint(st.TotalSwitches))
	if st.LastSwitch != nil {
		d.add("Last switch", st.LastSwitch.Environment+" at "+st.LastSwitch.Timestamp.Local().Format(time.DateTime))
	}
	if len(st.TopUsed) > 0 {
		d.add("Most used", "")
		for i, u := range st.TopUsed {
			d.add("", fmt.Sprintf("%d. %s (%d)", i+1, u.Name, u.UseCount))
		}
	}
	if len(st.NeverUsed) > 0 {
		d.add("Never used", strings.Join(st.NeverUsed, ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout(), d.render())
	return nil
}

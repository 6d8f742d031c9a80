package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurisko/envswitch/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the environment list whenever the registry changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by name, description or path")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listJSON = false
	refresh := func() {
		fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", time.Now().Format(time.TimeOnly))
		if err := runList(cmd, nil); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}
	refresh()

	return watch.New(cfg.RegistryPath, logger).Run(ctx, refresh)
}


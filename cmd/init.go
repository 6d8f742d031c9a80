package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the registry document if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := openRegistry()
		created, err := reg.Init()
		if err != nil {
			return err
		}
		logger.Debug("init", zap.Bool("created", created))
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Created registry at %s\n", reg.Store().Path())
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registry already exists at %s\n", reg.Store().Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

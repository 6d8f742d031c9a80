package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/gurisko/envswitch/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type switchResp struct {
	Name     string   `json:"name"`
	Platform string   `json:"platform"`
	Commands []string `json:"commands"`
}

var (
	switchJSON  bool
	switchQuiet bool
)

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Print the commands that enter an environment",
	Long: `Print the shell commands that enter an environment and record the switch.

Commands go to stdout, one per line, so they can be evaluated directly:

  eval "$(envswitch switch web)"                   # sh, bash, zsh
  envswitch switch web --shell windows > enter.bat  # cmd.exe`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
	switchCmd.Flags().BoolVar(&switchJSON, "json", false, "output JSON")
	switchCmd.Flags().BoolVarP(&switchQuiet, "quiet", "q", false, "do not print the banner on stderr")
}

func runSwitch(cmd *cobra.Command, args []string) error {
	platform := cfg.ShellPlatform()
	res, err := openRegistry().Switch(args[0], shell.New(platform))
	if err != nil {
		return err
	}
	env := res.Environment
	logger.Info("switched environment",
		zap.String("name", env.Name),
		zap.Int("use_count", env.UseCount),
		zap.Int("commands", len(res.Commands)),
	)

	if _, err := os.Stat(env.ProjectPath); err != nil {
		logger.Warn("project path is not accessible", zap.String("path", env.ProjectPath), zap.Error(err))
	}

	if switchJSON {
		return printJSON(cmd.OutOrStdout(), switchResp{Name: env.Name, Platform: platform.String(), Commands: res.Commands})
	}

	if !switchQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Switching to environment: %s (%d commands)\n", env.Name, len(res.Commands))
	}
	if len(res.Commands) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Commands, "\n"))
	}
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/gurisko/envswitch/internal/paths"
	"github.com/gurisko/envswitch/internal/registry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addPython string
	addNode   string
	addEnv    []string
	addCmds   []string
	addDesc   string
	addForce  bool
	addJSON   bool
)

var addCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Add an environment",
	Long: `Register a named environment. The project path does not have to exist yet.

Examples:
  envswitch add web ~/code/web --python ~/code/web/.venv --env PORT=8000 --cmd "npm start"
  envswitch add api /srv/api --desc "billing API" --force`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addPython, "python", "", "python virtualenv directory")
	addCmd.Flags().StringVar(&addNode, "node", "", "node version (informational)")
	addCmd.Flags().StringArrayVar(&addEnv, "env", nil, "environment variable KEY=VALUE (repeatable)")
	addCmd.Flags().StringArrayVar(&addCmds, "cmd", nil, "command to run after switching (repeatable)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "description")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "replace an existing environment, keeping its usage stats")
	addCmd.Flags().BoolVar(&addJSON, "json", false, "print JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	projectPath, err := paths.Expand(strings.TrimSpace(args[1]))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	spec := registry.EnvironmentSpec{
		Name:        args[0],
		ProjectPath: projectPath,
		NodeVersion: addNode,
		Commands:    addCmds,
		Description: addDesc,
	}
	if addPython != "" {
		if spec.PythonEnv, err = paths.Expand(addPython); err != nil {
			return fmt.Errorf("resolve python env: %w", err)
		}
	}
	if spec.EnvVars, err = parseEnvPairs(addEnv); err != nil {
		return err
	}

	env, err := openRegistry().Add(spec, addForce)
	if err != nil {
		return err
	}
	logger.Info("environment added", zap.String("name", env.Name), zap.Bool("overwrite", addForce))

	if addJSON {
		return printJSON(cmd.OutOrStdout(), env)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added environment %q at %s\n", env.Name, env.ProjectPath)
	return nil
}

// parseEnvPairs turns KEY=VALUE flags into ordered variables. Later keys win.
func parseEnvPairs(pairs []string) (registry.EnvVars, error) {
	vars := registry.EnvVars{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --env %q is not KEY=VALUE", registry.ErrValidation, p)
		}
		vars.Set(strings.TrimSpace(key), value)
	}
	return vars, nil
}

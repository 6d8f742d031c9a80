package cmd

import (
	"fmt"

	"github.com/gurisko/envswitch/internal/importer"
	"github.com/gurisko/envswitch/internal/paths"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importForce bool
	importJSON  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Add environments from definition files",
	Long: `Add environments from YAML files or Markdown files with YAML front matter.

A Markdown definition looks like:

  ---
  name: web
  project_path: ~/code/web
  env_vars:
    PORT: "8000"
  commands:
    - npm start
  ---
  Front-end dev server. The body becomes the description.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "replace existing environments")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "print JSON")
}

func runImport(cmd *cobra.Command, args []string) error {
	reg := openRegistry()
	var names []string
	for _, file := range args {
		spec, err := importer.ReadFile(file)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}
		if spec.ProjectPath != "" {
			if spec.ProjectPath, err = paths.Expand(spec.ProjectPath); err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
		}
		if spec.PythonEnv != "" {
			if spec.PythonEnv, err = paths.Expand(spec.PythonEnv); err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
		}

		env, err := reg.Add(spec, importForce)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}
		logger.Info("environment imported", zap.String("name", env.Name), zap.String("file", file))
		names = append(names, env.Name)
		if !importJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q from %s\n", env.Name, file)
		}
	}

	if importJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{"imported": names, "count": len(names)})
	}
	return nil
}

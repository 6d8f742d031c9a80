package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gurisko/envswitch/internal/gitinfo"
	"github.com/gurisko/envswitch/internal/registry"
	"github.com/spf13/cobra"
)

type getResp struct {
	Environment *registry.Environment `json:"environment"`
	PathExists  bool                  `json:"path_exists"`
	Git         *gitinfo.Info         `json:"git,omitempty"`
}

var getJSON bool

var getCmd = &cobra.Command{
	Use:     "get <name>",
	Aliases: []string{"show"},
	Short:   "Show environment details",
	Args:    cobra.ExactArgs(1),
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output JSON")
}

func runGet(cmd *cobra.Command, args []string) error {
	env, err := openRegistry().Get(args[0])
	if err != nil {
		return err
	}

	resp := getResp{Environment: env}
	if st, err := os.Stat(env.ProjectPath); err == nil && st.IsDir() {
		resp.PathExists = true
		resp.Git = gitinfo.Inspect(env.ProjectPath)
	}

	if getJSON {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	d := &detail{title: env.Name}
	path := env.ProjectPath
	if !resp.PathExists {
		path += " (missing)"
	}
	d.add("Path", path)
	if env.PythonEnv != "" {
		d.add("Python", env.PythonEnv)
	}
	if env.NodeVersion != "" {
		d.add("Node", env.NodeVersion)
	}
	if g := resp.Git; g != nil {
		if g.Detached {
			d.add("Git", "detached at "+g.Commit)
		} else {
			d.add("Git", g.Branch+" @ "+g.Commit)
		}
	}
	if len(env.EnvVars) > 0 {
		d.add("Env Vars", fmt.Sprintf("%d variable(s)", len(env.EnvVars)))
		for _, ev := range env.EnvVars {
			d.add("", "• "+ev.Key+"="+ev.Value)
		}
	}
	if len(env.Commands) > 0 {
		d.add("Commands", fmt.Sprintf("%d command(s)", len(env.Commands)))
		for _, c := range env.Commands {
			d.add("", "• "+c)
		}
	}
	if env.Description != "" {
		d.add("Description", strings.ReplaceAll(env.Description, "\n", " "))
	}
	d.add("Uses", fmt.Sprint(env.UseCount))
	if env.LastUsedAt != nil {
		d.add("Last used", env.LastUsedAt.Local().Format(time.DateTime))
	}
	d.add("Created", env.CreatedAt.Local().Format(time.DateTime))

	fmt.Fprintln(cmd.OutOrStdout(), d.render())
	return nil
}

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	delYes    bool
	delDryRun bool
	delJSON   bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete an environment",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&delYes, "yes", "y", false, "assume yes")
	deleteCmd.Flags().BoolVar(&delDryRun, "dry-run", false, "show what would be deleted")
	deleteCmd.Flags().BoolVar(&delJSON, "json", false, "print JSON")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	reg := openRegistry()
	out := cmd.OutOrStdout()

	// Look the record up first so a missing name fails before any prompt
	env, err := reg.Delete(name, false)
	if err != nil {
		return err
	}

	if delDryRun {
		if delJSON {
			return printJSON(out, map[string]any{"deleted": false, "dry_run": true, "environment": env})
		}
		fmt.Fprintf(out, "Would delete %q (%s, %d uses)\n", env.Name, env.ProjectPath, env.UseCount)
		return nil
	}

	// refuse to prompt on non-tty unless -y
	if !delYes {
		in := cmd.InOrStdin()
		if !interactive(in) {
			return errors.New("refusing to prompt on non-interactive stdin; use -y to confirm")
		}
		fmt.Fprintf(out, "Delete environment %q? [y/N]: ", env.Name)
		reader := bufio.NewReader(in)
		ans, _ := reader.ReadString('\n')
		ans = strings.ToLower(strings.TrimSpace(ans))
		if ans != "y" && ans != "yes" {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}

	if _, err := reg.Delete(name, true); err != nil {
		return err
	}
	logger.Info("environment deleted", zap.String("name", name))

	if delJSON {
		return printJSON(out, map[string]any{"deleted": true, "name": name})
	}
	fmt.Fprintln(out, "Deleted", name)
	return nil
}

// interactive reports whether r can answer a prompt. Files must be terminals;
// other readers were supplied by the caller on purpose.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

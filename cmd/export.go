package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gurisko/envswitch/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a snapshot of the registry",
	Long: `Write the whole registry document as YAML, JSON or a SQLite database.

Examples:
  envswitch export --format json > envs.json
  envswitch export --format sqlite -o envs.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "yaml, json or sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	doc, err := openRegistry().Store().Load()
	if err != nil {
		return err
	}

	if !format.Streamable() {
		if exportOutput == "" {
			return errors.New("sqlite export requires --output")
		}
		if err := export.WriteSQLite(cmd.Context(), exportOutput, doc); err != nil {
			return err
		}
		logger.Info("registry exported", zap.String("format", string(format)), zap.String("output", exportOutput))
		return nil
	}

	if exportOutput == "" {
		return export.Write(cmd.OutOrStdout(), doc, format)
	}

	f, err := os.OpenFile(exportOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := export.Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logger.Info("registry exported", zap.String("format", string(format)), zap.String("output", exportOutput))
	return nil
}

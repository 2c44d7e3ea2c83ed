package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore statuses and mastery BPMs from an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			doc, err := export.Decode(data, f)
			if err != nil {
				return err
			}

			res, err := importer.NewRestorer(app.Practice).Restore(cmd.Context(), app.User, doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Restored %d statuses and %d mastery BPMs\n", res.Statuses, res.BPMs)
			if res.SkippedLogs > 0 {
				fmt.Fprintf(out, "%d log entries were not replayed\n", res.SkippedLogs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (default from the file extension)")
	return cmd
}

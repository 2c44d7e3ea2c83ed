package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/etude/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress and the practice log (yaml, json or cbor)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Exporter == nil {
				return fmt.Errorf("export is not configured")
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			doc, err := app.Exporter.Build(cmd.Context(), app.User)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer file.Close()
				w = file
			}
			if err := export.Encode(w, doc, f); err != nil {
				return err
			}
			if outPath != "" && outPath != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d statuses, %d BPMs, %d log entries to %s\n",
					len(doc.Statuses), len(doc.BPMs), len(doc.Logs), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatYAML), "Output format: yaml, json or cbor")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

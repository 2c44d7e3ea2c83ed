package cli

import (
	"fmt"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read and set practice statuses",
	}
	cmd.AddCommand(
		newStatusGetCmd(app),
		newStatusSetCmd(app),
		newStatusListCmd(app),
	)
	return cmd
}

func newStatusGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get PRACTICE_ID",
		Short: "Show the status of a practice ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Practice.GetStatus(cmd.Context(), app.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", args[0], formatter.StatusPill(st))
			return nil
		},
	}
}

func newStatusSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set PRACTICE_ID STATUS",
		Short: "Set a status (untouched, practiced, mastered)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := app.Practice.SetStatus(cmd.Context(), app.User, args[0], st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", args[0], formatter.StatusPill(st))
			return nil
		},
	}
}

func newStatusListCmd(app *App) *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every practiced or mastered ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.Practice.ListStatuses(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			if family != "" {
				f, err := domain.ParseFamily(family)
				if err != nil {
					return err
				}
				kept := views[:0]
				for _, v := range views {
					if v.Family == f {
						kept = append(kept, v)
					}
				}
				views = kept
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatuses(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Only list one family")
	return cmd
}

func newBPMCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bpm",
		Short: "Read and record mastery BPMs per shape",
	}
	cmd.AddCommand(
		newBPMGetCmd(app),
		newBPMRaiseCmd(app),
		newBPMResetCmd(app),
		newBPMListCmd(app),
	)
	return cmd
}

func newBPMGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get SHAPE_ID",
		Short: "Show the mastery BPM of a shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bpm, err := app.Practice.GetMasteryBPM(cmd.Context(), app.User, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", args[0], formatter.FormatBPM(bpm))
			last, err := app.Sessions.LastTargetedBPM(cmd.Context(), app.User, args[0])
			if err == nil && last > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("last targeted at %d BPM", last)))
			}
			return nil
		},
	}
}

func newBPMRaiseCmd(app *App) *cobra.Command {
	var bpm int

	cmd := &cobra.Command{
		Use:   "raise SHAPE_ID",
		Short: "Record a BPM; kept only if it beats the current record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Practice.RaiseMasteryBPM(cmd.Context(), app.User, args[0], bpm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if resp.NewRecord {
				fmt.Fprintf(out, "%s new record: %s\n", formatter.StyleGreen.Render("★"), formatter.FormatBPM(resp.BPM))
			} else {
				fmt.Fprintf(out, "Kept existing record %s\n", formatter.FormatBPM(resp.BPM))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bpm, "bpm", 0, "BPM reached")
	_ = cmd.MarkFlagRequired("bpm")
	return cmd
}

func newBPMResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset SHAPE_ID",
		Short: "Clear the mastery BPM of a shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Practice.ResetMasteryBPM(cmd.Context(), app.User, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared mastery BPM for %s\n", args[0])
			return nil
		},
	}
}

func newBPMListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recorded mastery BPM",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.Practice.ListBPMs(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBPMs(views))
			return nil
		},
	}
}

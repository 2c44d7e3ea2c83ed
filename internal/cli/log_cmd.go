package cli

import (
	"fmt"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	var (
		bpm   int
		notes string
	)

	cmd := &cobra.Command{
		Use:   "snapshot PRACTICE_ID",
		Short: "Record a clean run at a BPM",
		Long: `Record a clean run of a practice ID. The shape's mastery BPM is raised
and a snapshot entry is appended to the log. A repeat of the same shape and
BPM inside the debounce window is ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := identity.ItemFromPracticeID(args[0])
			if err != nil {
				return err
			}
			if bpm > 0 {
				item = withBPM(item, bpm)
			}
			resp, err := app.Sessions.SubmitSnapshot(cmd.Context(), app.User, contract.SnapshotRequest{Item: item, Notes: notes})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case !resp.Accepted:
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Duplicate snapshot of %s at %d BPM ignored", resp.ShapeID, resp.BPM)))
			case resp.NewRecord:
				fmt.Fprintf(out, "%s new record for %s: %s\n", formatter.StyleGreen.Render("★"), resp.ShapeID, formatter.FormatBPM(resp.BPM))
			default:
				fmt.Fprintf(out, "Snapshot logged for %s at %s\n", resp.ShapeID, formatter.FormatBPM(resp.BPM))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bpm, "bpm", 0, "BPM actually played (defaults to the ID's tempo or checkpoint)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	return cmd
}

func withBPM(item domain.PracticeItem, bpm int) domain.PracticeItem {
	switch it := item.(type) {
	case domain.ScalePractice:
		it.BPM = bpm
		return it
	case domain.DohnanyiPractice:
		it.BPM = bpm
		return it
	case domain.HanonPractice:
		it.BPM = bpm
		return it
	default:
		return item
	}
}

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append to and read the practice log",
	}
	cmd.AddCommand(newLogAddCmd(app), newLogListCmd(app))
	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var (
		minutes int
		itemIDs []string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a timed practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := itemsFromIDs(itemIDs)
			if err != nil {
				return err
			}
			entry, err := app.Sessions.LogSession(cmd.Context(), app.User, contract.LogSessionRequest{
				DurationMinutes: minutes,
				Items:           items,
				Notes:           notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session (%s)\n", formatter.FormatMinutes(entry.DurationMinutes), entry.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	cmd.Flags().StringArrayVar(&itemIDs, "item", nil, "Practice ID worked on (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show log entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Sessions.ListLog(cmd.Context(), app.User, contract.NewListLogRequest(limit))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLog(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")
	return cmd
}

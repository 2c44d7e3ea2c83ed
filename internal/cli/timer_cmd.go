package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	var (
		notes string
		noLog bool
	)

	cmd := &cobra.Command{
		Use:   "timer [PRACTICE_ID...]",
		Short: "Time a practice session and log it when finished",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			items, err := itemsFromIDs(args)
			if err != nil {
				return err
			}

			m := newTimerModel(timerLabel(items), app.now)
			final, err := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}
			if noLog {
				return nil
			}
			return finishTimer(cmd.Context(), app, final.(timerModel), items, notes, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes saved with the session")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "Do not log the session")
	return cmd
}

func itemsFromIDs(ids []string) ([]domain.PracticeItem, error) {
	items := make([]domain.PracticeItem, 0, len(ids))
	for _, id := range ids {
		it, err := identity.ItemFromPracticeID(id)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func timerLabel(items []domain.PracticeItem) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0].Label()
	default:
		return fmt.Sprintf("%s (+%d more)", items[0].Label(), len(items)-1)
	}
}

// finishTimer logs a saved timer as a session. Discarded runs and runs
// shorter than half a minute are not logged.
func finishTimer(ctx context.Context, app *App, m timerModel, items []domain.PracticeItem, notes string, out io.Writer) error {
	if m.Outcome() != timerSaved {
		fmt.Fprintln(out, formatter.Dim("Session discarded."))
		return nil
	}
	minutes := m.Minutes()
	if minutes <= 0 {
		fmt.Fprintln(out, formatter.Dim("Session too short to log."))
		return nil
	}
	entry, err := app.Sessions.LogSession(ctx, app.User, contract.LogSessionRequest{
		DurationMinutes: minutes,
		Items:           items,
		Notes:           notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged %s session (%s)\n", formatter.FormatMinutes(entry.DurationMinutes), entry.ID)
	return nil
}

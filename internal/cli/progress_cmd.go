package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newGradesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grades [LEVEL]",
		Short: "Show grade completion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				level, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("%w: grade %q", domain.ErrInvalidDomainValue, args[0])
				}
				c, err := app.Progress.Grade(cmd.Context(), app.User, level)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatCompletion(c))
				return nil
			}

			resp, err := app.Progress.Grades(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatGrades(resp))
			return nil
		},
	}
}

func newFocusCmd(app *App) *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Suggest what to practice next",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.FocusRequest{}
			if family != "" {
				f, err := domain.ParseFamily(family)
				if err != nil {
					return err
				}
				req.Family = f
			}
			resp, err := app.Progress.Focus(cmd.Context(), app.User, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFocus(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Restrict to one family")
	return cmd
}

var errResetNotConfirmed = errors.New("reset not confirmed; pass --yes to skip the prompt")

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset FAMILY",
		Short: "Clear every status and mastery BPM of a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := domain.ParseFamily(args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return errResetNotConfirmed
				}
				confirmed := false
				if err := confirmResetForm(family, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					return errResetNotConfirmed
				}
			}

			resp, err := app.Practice.ClearFamily(cmd.Context(), app.User, family)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s: %d statuses, %d mastery BPMs\n",
				family.Label(), resp.Statuses, resp.BPMs)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmResetForm(family domain.Family, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear all %s progress?", family.Label())).
				Description("Statuses and mastery BPMs are removed. The practice log is kept.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(confirmed),
		),
	).WithTheme(etudeHuhTheme()).WithShowHelp(false)
}

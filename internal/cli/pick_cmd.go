package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/etude/internal/catalog"
	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

// pickSelection holds the values bound to the pick forms. Every field is
// an identifier token.
type pickSelection struct {
	Family       string
	ScaleID      string
	Articulation string
	Tempo        string
	Octaves      string
	Direction    string
	Hands        string
	Rhythm       string
	Accent       string
	Exercise     string
	BPM          string
}

func newPickSelection() *pickSelection {
	env := domain.Envelope(domain.ScalePractice{Permutation: domain.DefaultPermutation(domain.KeyC, domain.Major)})
	return &pickSelection{
		Family:       string(domain.FamilyScale),
		ScaleID:      identity.ScaleItemID(domain.KeyC, domain.Major),
		Articulation: env.Articulation,
		Tempo:        env.Tempo,
		Octaves:      strconv.Itoa(env.Octaves),
		Direction:    env.Direction,
		Hands:        env.Hands,
		Rhythm:       env.Rhythm,
		Accent:       env.Accent,
	}
}

func (p *pickSelection) item() (domain.PracticeItem, error) {
	family, err := domain.ParseFamily(p.Family)
	if err != nil {
		return nil, err
	}
	if family.IsExercise() {
		bpm, err := strconv.Atoi(p.BPM)
		if err != nil {
			return nil, fmt.Errorf("%w: bpm %q", domain.ErrInvalidDomainValue, p.BPM)
		}
		return domain.ItemEnvelope{Family: family, Exercise: p.Exercise, BPM: bpm}.Item()
	}

	s, ok := catalog.LookupScale(p.ScaleID)
	if !ok {
		return nil, fmt.Errorf("%w: scale %q", domain.ErrInvalidDomainValue, p.ScaleID)
	}
	octaves, err := strconv.Atoi(p.Octaves)
	if err != nil {
		return nil, fmt.Errorf("%w: octaves %q", domain.ErrInvalidDomainValue, p.Octaves)
	}
	return domain.ItemEnvelope{
		Family:       domain.FamilyScale,
		Key:          s.Key.Token(),
		Type:         s.Type.Token(),
		Articulation: p.Articulation,
		Tempo:        p.Tempo,
		Octaves:      octaves,
		Direction:    p.Direction,
		Hands:        p.Hands,
		Rhythm:       p.Rhythm,
		Accent:       p.Accent,
	}.Item()
}

func familyForm(sel *pickSelection) *huh.Form {
	opts := make([]huh.Option[string], 0, 3)
	for _, f := range domain.AllFamilies() {
		opts = append(opts, huh.NewOption(f.Label(), f.Token()))
	}
	return themed(huh.NewGroup(
		huh.NewSelect[string]().Title("Family").Options(opts...).Value(&sel.Family),
	))
}

func scaleForm(sel *pickSelection) *huh.Form {
	scales := catalog.Scales()
	items := make([]huh.Option[string], 0, len(scales))
	for _, s := range scales {
		items = append(items, huh.NewOption(fmt.Sprintf("%s %s", s.Key, s.Type), s.ID))
	}
	octaves := make([]huh.Option[string], 0, 4)
	for _, o := range domain.AllOctaves() {
		octaves = append(octaves, huh.NewOption(o.String(), strconv.Itoa(int(o))))
	}

	return themed(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Scale or arpeggio").Options(items...).Height(10).Value(&sel.ScaleID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Articulation").Options(tokenOptions(domain.AllArticulations())...).Value(&sel.Articulation),
			huh.NewSelect[string]().Title("Tempo").Options(tokenOptions(domain.AllTempoLevels())...).Value(&sel.Tempo),
			huh.NewSelect[string]().Title("Octaves").Options(octaves...).Value(&sel.Octaves),
			huh.NewSelect[string]().Title("Direction").Options(tokenOptions(domain.AllDirections())...).Value(&sel.Direction),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Hands").Options(tokenOptions(domain.AllHands())...).Value(&sel.Hands),
			huh.NewSelect[string]().Title("Rhythm").Options(tokenOptions(domain.AllRhythms())...).Value(&sel.Rhythm),
			huh.NewSelect[string]().Title("Accent").Options(tokenOptions(domain.AllAccents())...).Value(&sel.Accent),
		),
	)
}

func exerciseForm(family domain.Family, sel *pickSelection) *huh.Form {
	exs := catalog.Exercises(family)
	items := make([]huh.Option[string], 0, len(exs))
	for _, ex := range exs {
		items = append(items, huh.NewOption(fmt.Sprintf("%s No. %s", family.Label(), ex.Name), ex.Name))
	}
	targets := domain.BPMTargets(family)
	bpms := make([]huh.Option[string], 0, len(targets))
	for _, b := range targets {
		bpms = append(bpms, huh.NewOption(fmt.Sprintf("%d BPM", b), strconv.Itoa(b)))
	}
	if sel.Exercise == "" && len(exs) > 0 {
		sel.Exercise = exs[0].Name
	}
	if sel.BPM == "" && len(targets) > 0 {
		sel.BPM = strconv.Itoa(targets[0])
	}

	return themed(huh.NewGroup(
		huh.NewSelect[string]().Title("Exercise").Options(items...).Height(10).Value(&sel.Exercise),
		huh.NewSelect[string]().Title("Checkpoint").Options(bpms...).Value(&sel.BPM),
	))
}

func newPickCmd(app *App) *cobra.Command {
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a practice item interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			sel := newPickSelection()
			if err := familyForm(sel).Run(); err != nil {
				return err
			}
			family, err := domain.ParseFamily(sel.Family)
			if err != nil {
				return err
			}
			form := scaleForm(sel)
			if family.IsExercise() {
				form = exerciseForm(family, sel)
			}
			if err := form.Run(); err != nil {
				return err
			}
			item, err := sel.item()
			if err != nil {
				return err
			}
			return showPicked(cmd, app, item, snapshot)
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Record a snapshot of the picked item")
	return cmd
}

// showPicked prints the IDs and current progress of item and optionally
// records a snapshot of it.
func showPicked(cmd *cobra.Command, app *App, item domain.PracticeItem, snapshot bool) error {
	ctx := cmd.Context()
	practiceID, err := identity.PracticeID(item)
	if err != nil {
		return err
	}
	shapeID, err := identity.ShapeID(item)
	if err != nil {
		return err
	}
	status, err := app.Practice.GetStatus(ctx, app.User, practiceID)
	if err != nil {
		return err
	}
	bpm, err := app.Practice.GetMasteryBPM(ctx, app.User, shapeID)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"practice", practiceID},
		{"shape", shapeID},
		{"status", formatter.StatusPill(status)},
		{"mastery", formatter.FormatBPM(bpm)},
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.RenderBox(item.Label(), formatter.RenderTable([]string{"ID", "VALUE"}, rows)))

	if !snapshot {
		return nil
	}
	resp, err := app.Sessions.SubmitSnapshot(ctx, app.User, contract.SnapshotRequest{Item: item})
	if err != nil {
		return err
	}
	if resp.NewRecord {
		fmt.Fprintf(out, "%s new record: %s\n", formatter.StyleGreen.Render("★"), formatter.FormatBPM(resp.BPM))
	} else if resp.Accepted {
		fmt.Fprintf(out, "Snapshot logged at %s\n", formatter.FormatBPM(resp.BPM))
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List scales, arpeggios and exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			families := domain.AllFamilies()
			if family != "" {
				f, err := domain.ParseFamily(family)
				if err != nil {
					return err
				}
				families = []domain.Family{f}
			}
			out := cmd.OutOrStdout()
			for i, f := range families {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, formatter.Header(f.Label()))
				fmt.Fprint(out, formatter.FormatCatalog(f))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Only list one family (scale, dohnanyi, hanon)")
	return cmd
}

func newIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Decode and build practice identifiers",
	}
	cmd.AddCommand(newIDDecodeCmd(), newIDEncodeCmd())
	return cmd
}

func newIDDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode ID",
		Short: "Show the fields of any identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := identity.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDecoded(d))
			return nil
		},
	}
}

func newIDEncodeCmd() *cobra.Command {
	var (
		flags itemFlags
		shape bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a practice ID (or shape ID with --shape) from its fields",
		Example: `  etude id encode --key D --type Major --tempo Fast
  etude id encode --family hanon --exercise 12 --bpm 96
  etude id encode --key C --type MajorArpeggio --shape`,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := flags.item()
			if err != nil {
				return err
			}
			encode := identity.PracticeID
			if shape {
				encode = identity.ShapeID
			}
			id, err := encode(item)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&shape, "shape", false, "Print the mastery-BPM shape ID instead")
	return cmd
}

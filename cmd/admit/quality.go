package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/admit/pkg/quality"
)

type revisionJSON struct {
	Version int  `json:"version"`
	Proper  bool `json:"proper,omitempty"`
	Repack  bool `json:"repack,omitempty"`
}

type modelJSON struct {
	Family   quality.Family `json:"family"`
	Quality  string         `json:"quality"`
	Rank     int            `json:"rank"`
	Revision revisionJSON   `json:"revision"`
}

func toModelJSON(family quality.Family, m quality.Model) modelJSON {
	rev := m.Revision
	if rev.Version < 1 {
		rev.Version = 1
	}
	return modelJSON{
		Family:   family,
		Quality:  m.Quality.String(),
		Rank:     m.Quality.Rank,
		Revision: revisionJSON{Version: rev.Version, Proper: rev.Proper, Repack: rev.Repack},
	}
}

func familyFlag(cmd *cobra.Command) (quality.Family, error) {
	s, _ := cmd.Flags().GetString("family")
	return quality.ParseFamily(s)
}

// resolveModel accepts a tier name from the catalog or a file/release
// name to parse.
func resolveModel(family quality.Family, arg string) quality.Model {
	if q, err := quality.Lookup(family, arg); err == nil {
		return quality.NewModel(q)
	}
	return quality.Parse(family, arg, quality.AudioHint{})
}

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <name>...",
		Short: "Parse the quality of file or release names",
		Long: `Parse file or release names into a quality tier and revision.

Examples:
  admit parse "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv"
  admit parse --family music "01 - Intro [FLAC 24bit].flac" "02 - Song (320kbps).mp3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := familyFlag(cmd)
			if err != nil {
				return err
			}
			return runParse(cmd.OutOrStdout(), a.jsonOutput, family, args)
		},
	}
	cmd.Flags().StringP("family", "f", string(quality.FamilyMovie), "Media family: movie or music")
	return cmd
}

type parseJSON struct {
	Name string `json:"name"`
	modelJSON
}

func runParse(w io.Writer, asJSON bool, family quality.Family, names []string) error {
	out := make([]parseJSON, 0, len(names))
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		m := quality.Parse(family, name, quality.AudioHint{})
		out = append(out, parseJSON{Name: name, modelJSON: toModelJSON(family, m)})
		rows = append(rows, []string{name, m.Quality.String(), strconv.Itoa(m.Quality.Rank), m.Revision.String()})
	}
	if asJSON {
		return printJSON(w, out)
	}
	printTable(w, []string{"Name", "Quality", "Rank", "Revision"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
	return nil
}

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [flags] <current> <candidate>",
		Short: "Compare two qualities and report whether the candidate is an upgrade",
		Long: `Compare two qualities. Each argument is a tier name from
'admit qualities' or a file/release name to parse.

Examples:
  admit compare Bluray-1080p "Movie.2024.1080p.BluRay.PROPER.mkv"
  admit compare --family music MP3-320 FLAC`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := familyFlag(cmd)
			if err != nil {
				return err
			}
			return runCompare(cmd.OutOrStdout(), a.jsonOutput, family, args[0], args[1])
		},
	}
	cmd.Flags().StringP("family", "f", string(quality.FamilyMovie), "Media family: movie or music")
	return cmd
}

type compareJSON struct {
	Current   modelJSON `json:"current"`
	Candidate modelJSON `json:"candidate"`
	Result    int       `json:"result"`
	Upgrade   bool      `json:"upgrade"`
}

func runCompare(w io.Writer, asJSON bool, family quality.Family, currentArg, candidateArg string) error {
	current := resolveModel(family, currentArg)
	candidate := resolveModel(family, candidateArg)
	result := quality.Compare(candidate, current)
	upgrade := !candidate.IsUnknown() && quality.IsUpgrade(&current, candidate)

	if asJSON {
		return printJSON(w, compareJSON{
			Current:   toModelJSON(family, current),
			Candidate: toModelJSON(family, candidate),
			Result:    result,
			Upgrade:   upgrade,
		})
	}

	op := map[int]string{-1: "<", 0: "=", 1: ">"}[result]
	_, _ = fmt.Fprintf(w, "%s %s %s\n", candidate, op, current)
	if upgrade {
		_, _ = fmt.Fprintln(w, "upgrade: yes")
	} else {
		_, _ = fmt.Fprintln(w, "upgrade: no")
	}
	return nil
}

func newQualitiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qualities",
		Short: "List the quality tiers of each family, lowest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			families := quality.Families()
			if s, _ := cmd.Flags().GetString("family"); s != "" {
				f, err := quality.ParseFamily(s)
				if err != nil {
					return err
				}
				families = []quality.Family{f}
			}
			return runQualities(cmd.OutOrStdout(), a.jsonOutput, families)
		},
	}
	cmd.Flags().StringP("family", "f", "", "Only list one family")
	return cmd
}

type tierJSON struct {
	Family quality.Family `json:"family"`
	Name   string         `json:"name"`
	Rank   int            `json:"rank"`
}

func runQualities(w io.Writer, asJSON bool, families []quality.Family) error {
	var tiers []tierJSON
	var rows [][]string
	for _, f := range families {
		c, err := quality.CatalogFor(f)
		if err != nil {
			return err
		}
		for _, q := range c.Tiers() {
			tiers = append(tiers, tierJSON{Family: f, Name: q.Name, Rank: q.Rank})
			rows = append(rows, []string{string(f), strconv.Itoa(q.Rank), q.Name})
		}
	}
	if asJSON {
		return printJSON(w, tiers)
	}
	printTable(w, []string{"Family", "Rank", "Name"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft})
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chordscope/chord"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Lists the chords chordscope recognises",
	Long:  `Lists the chord library. A * marks templates the challenge uses by default.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ABBREV\tNAME\tINTERVALS\tQUALITY\t")
		for _, t := range chord.All() {
			mark := ""
			if t.ChallengeEnabled {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n", t.Abbrev, t.Name, t.Intervals, t.Quality, mark)
		}
		return w.Flush()
	},
}

package cmd

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"chordscope/analyzer"
	"chordscope/config"
	"chordscope/midi"
	"chordscope/replay"
)

var replayTop int

func init() {
	replayCmd.Flags().IntVar(&replayTop, "top", 5, "list the most frequent chords (0 to skip)")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <file.mid>",
	Short: "Prints the chords in a standard MIDI file",
	Long:  `Plays a standard MIDI file through the analyzer, all tracks merged, and prints each chord change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := midi.ReadFile(args[0])
		if err != nil {
			return err
		}

		a := analyzer.New(cfg.Layout(), cfg.Options(), nil, nil)
		sum, err := replay.Run(os.Stdout, midi.NoteTimeline(s), a)
		if err != nil {
			return err
		}

		fmt.Printf("\n%d note events, %d chord changes over %s\n",
			sum.Events, sum.Changes, durafmt.Parse(sum.Duration).LimitFirstN(2))
		printTopChords(sum.Chords, replayTop)
		return nil
	},
}

func printTopChords(counts map[string]int, n int) {
	type entry struct {
		label string
		count int
	}
	var entries []entry
	for label, count := range counts {
		entries = append(entries, entry{label, count})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	for _, e := range entries {
		fmt.Printf("  %-10s %d\n", e.label, e.count)
	}
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"chordscope/analyzer"
	"chordscope/config"
	"chordscope/debug"
	"chordscope/midi"
)

var (
	monitorPort string
	monitorLog  bool
)

func init() {
	monitorCmd.Flags().StringVar(&monitorPort, "port", "", "input port (substring, default from config or the last port)")
	monitorCmd.Flags().BoolVar(&monitorLog, "log", false, "print the debug log (ignored messages, drops) to stderr")
	rootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Prints notes and chords from a MIDI input",
	Long:  `Prints every note from a MIDI input and the chords it forms. Stop with Ctrl-C.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		name := cfg.Input.PortName
		if monitorPort != "" {
			name = monitorPort
		}
		if monitorLog {
			debug.EnableWriter(os.Stderr)
		}
		defer midi.CloseDriver()

		in, err := midi.OpenInput(name)
		if err != nil {
			return err
		}
		defer in.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a := analyzer.New(cfg.Layout(), cfg.Options(), nil, nil)
		fmt.Printf("listening on %s\n", in.ID())

		start := time.Now()
		notes := 0
		last := ""
		for {
			select {
			case <-ctx.Done():
				fmt.Printf("\n%d notes in %s\n", notes, durafmt.Parse(time.Since(start)).LimitFirstN(2))
				return nil
			case ev, ok := <-in.Events():
				if !ok {
					return fmt.Errorf("input %s closed", in.ID())
				}
				if ev.Type == midi.NoteOn {
					notes++
				}
				a.HandleMIDI(ev)
				fmt.Println(ev)
				if st := a.State(); st.ChordsLabel != last {
					last = st.ChordsLabel
					if last != "" {
						fmt.Printf("  %s | %s\n", st.NotesLabel, last)
					}
				}
			}
		}
	},
}

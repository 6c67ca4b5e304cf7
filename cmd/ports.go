package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chordscope/midi"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists MIDI input ports",
	Long:  `Lists MIDI input ports. The last one is used when no port is configured.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		names, err := midi.InputPorts()
		if errors.Is(err, midi.ErrPortsTimeout) {
			return fmt.Errorf("%w (on macOS try: sudo killall coreaudiod midiserver)", err)
		}
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no MIDI input ports")
			return nil
		}
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i, name)
		}
		return nil
	},
}

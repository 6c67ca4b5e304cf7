package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"chordscope/analyzer"
	"chordscope/config"
	"chordscope/debug"
	"chordscope/midi"
	"chordscope/theme"
	"chordscope/tui"
)

var (
	debugLog    bool
	palettePath string
	portName    string
	noMIDI      bool
)

var rootCmd = &cobra.Command{
	Use:   "chordscope",
	Short: "Piano keyboard chord analyzer",
	Long: `chordscope shows the chords you play on a MIDI keyboard, or click on the
on-screen keyboard, and can quiz you with random chords to play.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !debugLog {
			return nil
		}
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		return debug.Enable(dir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Disable()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to the config directory")
	rootCmd.Flags().StringVar(&palettePath, "palette", "", "built-in palette name or path to a GIMP .gpl file")
	rootCmd.Flags().StringVar(&portName, "port", "", "MIDI input port to follow (substring, overrides config)")
	rootCmd.Flags().BoolVar(&noMIDI, "no-midi", false, "mouse only, do not look for MIDI inputs")
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}

func runTUI(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	palette := theme.Default()
	if palettePath != "" {
		if palette, err = theme.Builtin(palettePath); err != nil {
			if palette, err = theme.LoadGPL(palettePath); err != nil {
				return err
			}
		}
	}
	th := theme.New(palette)

	base := cfg.Layout()
	base.Margin = 1 // one terminal column each side
	a := analyzer.New(base, cfg.Options(), newRand(cfg.Challenge.Seed), nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var deviceMgr *midi.DeviceManager
	if cfg.Input.AutoConnect && !noMIDI {
		preferred := cfg.Input.PortName
		if portName != "" {
			preferred = portName
		}
		deviceMgr = midi.NewDeviceManager(preferred)
		done := make(chan struct{})
		go func() {
			deviceMgr.Run(ctx)
			close(done)
		}()
		// the input must be closed before the driver goes away
		defer func() {
			cancel()
			<-done
			midi.CloseDriver()
		}()
	}

	m := tui.NewModel(a, deviceMgr, cfg, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// newRand seeds from the clock when seed is 0
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

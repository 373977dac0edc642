package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/faizan-m/faiz"
)

const usageText = `midi2wav converts MIDI files to WAV using FluidSynth.

Usage:
  midi2wav [options] <input.mid> <output.wav>   convert a single file
  midi2wav [options] <directory>                convert every *.mid in a directory
`

func main() {
	cmd := &cli.Command{
		Name:      "midi2wav",
		Usage:     "batch-convert MIDI files to WAV via FluidSynth",
		ArgsUsage: "<input.mid> <output.wav> | <directory>",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "gain",
				Value: faiz.DefaultGain,
				Usage: "renderer gain",
			},
			&cli.IntFlag{
				Name:  "sample-rate",
				Value: faiz.DefaultSampleRate,
				Usage: "output sample rate in Hz",
			},
			&cli.StringFlag{
				Name:  "soundfont",
				Usage: "soundfont path (skips the default-then-search resolution)",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return errors.New("missing path arguments")
	}
	if len(args) > 2 {
		return errors.Errorf("expected 1 or 2 arguments, got %d", len(args))
	}

	opts := []faiz.Option{
		faiz.WithGain(cmd.Float("gain")),
		faiz.WithSampleRate(int(cmd.Int("sample-rate"))),
	}
	if sf := cmd.String("soundfont"); sf != "" {
		opts = append(opts, faiz.WithSoundFont(sf))
	}
	conv, err := faiz.NewConverter(opts...)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return conv.ConvertFile(ctx, args[0], args[1])
	}
	// Batch mode tolerates per-file failures; only an invalid run (bad
	// directory, zero matches) is an error here.
	_, err = conv.ConvertDir(ctx, args[0])
	return err
}

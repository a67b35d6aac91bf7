// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/soundbind/engine"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var replayRecord recordFlags

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Play a script of element events",
	Long: `Replay reads a script, one step per line, and applies it to the
configured elements:

  <element> <event>        fire event on element
  fire <element> <event>   the same; needed for elements named play,
                           stop, wait or fire
  play <element>           start element's sound
  stop <element>           stop element's sound
  wait <duration>          let audio run, e.g. 250ms
  # comment

With --record the script is rendered offline into a WAV file instead of
running in real time. The script is read from stdin when no file is given
or the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayRecord.path, "record", "o", "", "render into this WAV file")
	replayCmd.Flags().BoolVar(&replayRecord.mono, "mono", false, "record 16-bit mono")
	replayCmd.Flags().IntVar(&replayRecord.monoRate, "mono-rate", 16000, "sample rate of mono recordings")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	script := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		script = f
	}

	return replay(cmd.Context(), cfgFile, script, replayRecord, logger)
}

func replay(ctx context.Context, path string, script io.Reader, rec recordFlags, logger zerolog.Logger) (err error) {
	steps, err := ParseScript(script)
	if err != nil {
		return err
	}

	s, err := openSession(path, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	s.waitLoaded(ctx)

	sink, err := rec.sink(s.engine.SampleRate())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing recording: %w", cerr)
		}
	}()

	r := &runner{
		board:   s.board,
		engine:  s.engine,
		sink:    sink,
		offline: rec.path != "",
		logger:  logger,
	}

	if !r.offline {
		pumpCtx, cancel := context.WithCancel(ctx)
		done := pump(pumpCtx, s.engine, engine.Discard)
		defer func() {
			cancel()
			<-done
		}()
	}

	for _, step := range steps {
		if err := r.run(ctx, step); err != nil {
			return fmt.Errorf("line %d: %w", step.Line, err)
		}
	}

	if out, ok := sink.(*engine.Recorder); ok {
		logger.Info().Str("file", rec.path).Int("frames", out.Frames()).Msg("recorded")
	}
	return nil
}

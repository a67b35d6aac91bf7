// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ik5/soundbind/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchRecord   recordFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the elements live, reloading the config when it changes",
	Long: `Watch binds the configured elements, plays audio in real time and
applies script steps read from stdin as they arrive (see replay for the
syntax). Edits to the config file are applied without a restart: changed
elements are rebound, removed ones are unbound.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchRecord.path, "record", "o", "", "also record into this WAV file")
	watchCmd.Flags().BoolVar(&watchRecord.mono, "mono", false, "record 16-bit mono")
	watchCmd.Flags().IntVar(&watchRecord.monoRate, "mono-rate", 16000, "sample rate of mono recordings")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "delay before applying config changes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()

	s, err := openSession(cfgFile, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := watcher.New(watcher.Config{Path: cfgFile, DebounceDur: watchDebounce, Logger: logger})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer w.Stop()

	sink, err := watchRecord.sink(s.engine.SampleRate())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing recording: %w", cerr)
		}
	}()

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	pumped := pump(pumpCtx, s.engine, sink)

	r := &runner{board: s.board, engine: s.engine, sink: sink, logger: logger}
	lines := readLines(ctx, cmd.InOrStdin())

	logger.Info().Str("config", cfgFile).Strs("elements", s.board.IDs()).Msg("watching")

	for n := 1; ; {
		select {
		case <-ctx.Done():
			cancel()
			return <-pumped
		case err := <-pumped:
			return err
		case <-w.Changes():
			changes, err := s.reload()
			if err != nil {
				logger.Error().Err(err).Msg("reloading config")
				continue
			}
			logger.Info().
				Strs("added", changes.Added).
				Strs("updated", changes.Updated).
				Strs("removed", changes.Removed).
				Msg("config reloaded")
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			step, ok, err := ParseLine(line, n)
			n++
			if err != nil {
				logger.Warn().Err(err).Msg("skipping line")
				continue
			}
			if !ok {
				continue
			}
			if err := r.run(ctx, step); err != nil {
				logger.Warn().Err(err).Int("line", step.Line).Msg("step failed")
			}
		}
	}
}

// readLines sends r's lines until EOF or ctx is done, then closes the
// channel.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)

		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

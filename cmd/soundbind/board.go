// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/soundbind/internal/tui"
	"github.com/ik5/soundbind/internal/watcher"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	boardRecord  recordFlags
	boardLogFile string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Try the elements from an interactive terminal board",
	Long: `Board lists the configured elements. Moving the cursor fires
mouseleave/blur on the old element and mouseenter/focus on the new one,
enter fires click, p and s play and stop the sound directly. The config
file is reloaded when it changes.

Logs would corrupt the screen, so they are discarded unless --log-file is
given.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVarP(&boardRecord.path, "record", "o", "", "also record into this WAV file")
	boardCmd.Flags().BoolVar(&boardRecord.mono, "mono", false, "record 16-bit mono")
	boardCmd.Flags().IntVar(&boardRecord.monoRate, "mono-rate", 16000, "sample rate of mono recordings")
	boardCmd.Flags().StringVar(&boardLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()

	log := zerolog.Nop()
	if boardLogFile != "" {
		f, err := os.OpenFile(boardLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()

		log, err = newLogger(f, logLevel)
		if err != nil {
			return err
		}
	}

	s, err := openSession(cfgFile, log)
	if err != nil {
		return err
	}
	defer s.Close()

	sink, err := boardRecord.sink(s.engine.SampleRate())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing recording: %w", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pumped := pump(ctx, s.engine, sink)

	wcfg := watcher.DefaultConfig(cfgFile)
	wcfg.Logger = log
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer w.Stop()

	p := tea.NewProgram(tui.New(s.board), tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Changes():
				changes, err := s.reload()
				p.Send(tui.ReloadedMsg{Changes: changes, Err: err})
			}
		}
	}()

	_, runErr := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	if err := <-pumped; err != nil {
		return err
	}
	if runErr != nil && !interrupted {
		return fmt.Errorf("running board: %w", runErr)
	}
	return nil
}

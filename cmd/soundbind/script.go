// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ik5/soundbind/engine"
	"github.com/ik5/soundbind/internal/board"
	"github.com/rs/zerolog"
)

var ErrBadStep = errors.New("bad script line")

type StepKind int

const (
	StepDispatch StepKind = iota
	StepPlay
	StepStop
	StepWait
)

// Step is one script line:
//
//	<element> <event>         fire event on element
//	fire <element> <event>    the same, for elements named play, stop,
//	                          wait or fire
//	play <element>            start element's sound directly
//	stop <element>            stop it
//	wait <duration>           let audio run, e.g. 250ms
type Step struct {
	Kind    StepKind
	Element string
	Event   string
	Wait    time.Duration
	Line    int
}

// ParseLine parses a single line. ok is false for blank lines and
// comments.
func ParseLine(text string, line int) (step Step, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return Step{}, false, nil
	}

	fields := strings.Fields(text)
	if len(fields) == 3 && fields[0] == "fire" {
		return Step{Kind: StepDispatch, Element: fields[1], Event: fields[2], Line: line}, true, nil
	}
	if len(fields) != 2 {
		return Step{}, false, fmt.Errorf("%w %d: want two words, got %q", ErrBadStep, line, text)
	}

	step = Step{Line: line}
	switch fields[0] {
	case "fire":
		return Step{}, false, fmt.Errorf("%w %d: fire needs an element and an event", ErrBadStep, line)
	case "wait":
		d, err := time.ParseDuration(fields[1])
		if err != nil || d < 0 {
			return Step{}, false, fmt.Errorf("%w %d: bad duration %q", ErrBadStep, line, fields[1])
		}
		step.Kind, step.Wait = StepWait, d
	case "play":
		step.Kind, step.Element = StepPlay, fields[1]
	case "stop":
		step.Kind, step.Element = StepStop, fields[1]
	default:
		step.Kind, step.Element, step.Event = StepDispatch, fields[0], fields[1]
	}
	return step, true, nil
}

func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		step, ok, err := ParseLine(sc.Text(), n)
		if err != nil {
			return nil, err
		}
		if ok {
			steps = append(steps, step)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return steps, nil
}

// runner executes steps against a board. Offline runners render waits
// into sink as fast as possible instead of sleeping.
type runner struct {
	board   *board.Board
	engine  *engine.Engine
	sink    engine.Sink
	offline bool
	logger  zerolog.Logger
}

func (r *runner) run(ctx context.Context, s Step) error {
	switch s.Kind {
	case StepDispatch:
		n, err := r.board.Dispatch(s.Element, s.Event)
		if err != nil {
			return err
		}
		r.logger.Debug().Str("element", s.Element).Str("event", s.Event).Int("listeners", n).Msg("dispatched")
	case StepPlay:
		return r.board.Play(s.Element)
	case StepStop:
		return r.board.Stop(s.Element)
	case StepWait:
		if r.offline {
			return r.engine.Render(r.sink, s.Wait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Wait):
		}
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Step
		skip bool
		err  bool
	}{
		{name: "blank", in: "   ", skip: true},
		{name: "comment", in: "# hover the play button", skip: true},
		{name: "event", in: "play-btn mouseenter", want: Step{Kind: StepDispatch, Element: "play-btn", Event: "mouseenter"}},
		{name: "play", in: "play close", want: Step{Kind: StepPlay, Element: "close"}},
		{name: "stop", in: "stop close", want: Step{Kind: StepStop, Element: "close"}},
		{name: "wait", in: "wait 250ms", want: Step{Kind: StepWait, Wait: 250 * time.Millisecond}},
		{name: "surrounding space", in: "\tclose   click ", want: Step{Kind: StepDispatch, Element: "close", Event: "click"}},
		{name: "fire", in: "fire play click", want: Step{Kind: StepDispatch, Element: "play", Event: "click"}},
		{name: "fire keyword element", in: "fire wait mouseenter", want: Step{Kind: StepDispatch, Element: "wait", Event: "mouseenter"}},
		{name: "fire without event", in: "fire close", err: true},
		{name: "one word", in: "close", err: true},
		{name: "three words", in: "close click now", err: true},
		{name: "bad duration", in: "wait soon", err: true},
		{name: "negative duration", in: "wait -1s", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok, err := ParseLine(tt.in, 7)
			if tt.err {
				require.ErrorIs(t, err, ErrBadStep)
				require.Contains(t, err.Error(), " 7:")
				return
			}
			require.NoError(t, err)
			require.Equal(t, !tt.skip, ok)
			if ok {
				tt.want.Line = 7
				require.Equal(t, tt.want, step)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	steps, err := ParseScript(strings.NewReader(`
# intro
play-btn mouseenter
wait 1s

play-btn mouseleave
`))
	require.NoError(t, err)
	require.Equal(t, []Step{
		{Kind: StepDispatch, Element: "play-btn", Event: "mouseenter", Line: 3},
		{Kind: StepWait, Wait: time.Second, Line: 4},
		{Kind: StepDispatch, Element: "play-btn", Event: "mouseleave", Line: 6},
	}, steps)
}

func TestParseScript_ReportsLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("a click\nwait forever\n"))
	require.ErrorIs(t, err, ErrBadStep)
	require.Contains(t, err.Error(), "line 2")
}
